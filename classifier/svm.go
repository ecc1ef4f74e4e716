package classifier

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"strings"

	libSvm "github.com/ewalker544/libsvm-go"
	"github.com/pkg/errors"
)

// SVMParams configures a C-SVC. The defaults reproduce a linear SMO: a
// polynomial kernel of degree 1 with no constant term, C=1, tolerance 1e-3.
type SVMParams struct {
	Kernel string  `yaml:"kernel"`
	Degree int     `yaml:"degree"`
	Gamma  float64 `yaml:"gamma"`
	Coef0  float64 `yaml:"coef0"`
	C      float64 `yaml:"c"`
	Eps    float64 `yaml:"eps"`
}

func DefaultSVMParams() SVMParams {
	return SVMParams{
		Kernel: "poly",
		Degree: 1,
		Gamma:  1,
		Coef0:  0,
		C:      1.0,
		Eps:    0.001,
	}
}

var svmKernels = map[string]int{
	"linear":  libSvm.LINEAR,
	"poly":    libSvm.POLY,
	"rbf":     libSvm.RBF,
	"sigmoid": libSvm.SIGMOID,
}

// SVM is the support vector machine Strategy. Features are min-max
// normalized to [0,1] before training and prediction.
type SVM struct {
	Params SVMParams
}

func NewSVM(params SVMParams) (*SVM, error) {
	if _, ok := svmKernels[strings.ToLower(params.Kernel)]; !ok {
		return nil, errors.Errorf("unknown svm kernel %q", params.Kernel)
	}
	if params.C <= 0 {
		return nil, errors.Errorf("svm C must be positive, was %g", params.C)
	}
	return &SVM{Params: params}, nil
}

func (s *SVM) Name() string {
	return "svm"
}

func (s *SVM) Construct() Model {
	return &svmModel{params: s.Params}
}

type svmModel struct {
	params SVMParams
	scaler *scaler
	model  *libSvm.Model
}

type svmBlob struct {
	Scaler *scaler
	Model  []byte
}

func (m *svmModel) parameter() *libSvm.Parameter {
	p := libSvm.NewParameter()
	p.SvmType = libSvm.C_SVC
	p.KernelType = svmKernels[strings.ToLower(m.params.Kernel)]
	p.Degree = m.params.Degree
	p.Gamma = m.params.Gamma
	p.Coef0 = m.params.Coef0
	p.C = m.params.C
	p.Eps = m.params.Eps
	p.QuietMode = true
	return p
}

// Fit trains through a libsvm-format problem file, which is the only way
// libsvm-go accepts training data.
func (m *svmModel) Fit(x [][]float64, y []int) error {
	if len(x) == 0 || len(x) != len(y) {
		return errors.Errorf("svm needs matching non-empty inputs, got %d vectors and %d labels", len(x), len(y))
	}

	sc, err := fitScaler(x)
	if err != nil {
		return err
	}

	dir, err := ioutil.TempDir("", "expertise-svm")
	if err != nil {
		return errors.Wrap(err, "svm couldn't create work directory")
	}
	defer os.RemoveAll(dir)

	problemPath := filepath.Join(dir, "train.libsvm")
	if err := writeProblem(problemPath, sc, x, y); err != nil {
		return err
	}

	param := m.parameter()
	problem, err := libSvm.NewProblem(problemPath, param)
	if err != nil {
		return errors.Wrap(err, "svm couldn't read problem")
	}

	model := libSvm.NewModel(param)
	if err := model.Train(problem); err != nil {
		return errors.Wrap(err, "svm training failed")
	}

	m.scaler = sc
	m.model = model
	return nil
}

func (m *svmModel) Predict(x []float64) (int, error) {
	if m.model == nil {
		return 0, ErrNotTrained
	}
	if len(x) != len(m.scaler.Min) {
		return 0, errors.Errorf("svm expects %d features, got %d", len(m.scaler.Min), len(x))
	}

	label := m.model.Predict(sparse(m.scaler.apply(x)))
	return int(math.Round(label)), nil
}

func (m *svmModel) MarshalBinary() ([]byte, error) {
	if m.model == nil {
		return nil, ErrNotTrained
	}

	dir, err := ioutil.TempDir("", "expertise-svm")
	if err != nil {
		return nil, errors.Wrap(err, "svm couldn't create work directory")
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "svm.model")
	if err := m.model.Dump(path); err != nil {
		return nil, errors.Wrap(err, "svm couldn't dump model")
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "svm couldn't read dumped model")
	}

	return json.Marshal(&svmBlob{Scaler: m.scaler, Model: raw})
}

func (m *svmModel) UnmarshalBinary(b []byte) error {
	var blob svmBlob
	if err := json.Unmarshal(b, &blob); err != nil {
		return errors.Wrap(err, "svm couldn't decode model")
	}
	if blob.Scaler == nil || len(blob.Model) == 0 {
		return errors.New("svm model blob is incomplete")
	}

	dir, err := ioutil.TempDir("", "expertise-svm")
	if err != nil {
		return errors.Wrap(err, "svm couldn't create work directory")
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "svm.model")
	if err := ioutil.WriteFile(path, blob.Model, 0600); err != nil {
		return errors.Wrap(err, "svm couldn't stage model")
	}

	model := libSvm.NewModel(libSvm.NewParameter())
	if err := model.ReadModel(path); err != nil {
		return errors.Wrap(err, "svm couldn't read model")
	}

	m.scaler = blob.Scaler
	m.model = model
	return nil
}

func writeProblem(path string, sc *scaler, x [][]float64, y []int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "svm couldn't create problem file")
	}

	w := bufio.NewWriter(f)
	for i, row := range x {
		fmt.Fprintf(w, "%d", y[i])
		for j, v := range sc.apply(row) {
			if v != 0 {
				fmt.Fprintf(w, " %d:%g", j+1, v)
			}
		}
		fmt.Fprintln(w)
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrap(err, "svm couldn't write problem file")
	}
	return f.Close()
}

// sparse converts a dense vector to libsvm's 1-based sparse form.
func sparse(v []float64) map[int]float64 {
	x := make(map[int]float64, len(v))
	for i, f := range v {
		if f != 0 {
			x[i+1] = f
		}
	}
	return x
}
