package controllers

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// windowSizes returns the configured sizes, or just the requested one when
// windowStr is set.
func windowSizes(windowStr string, configured []int) ([]int, error) {
	windowStr = strings.TrimSpace(windowStr)
	if windowStr == "" {
		return configured, nil
	}

	ws, err := strconv.Atoi(windowStr)
	if err != nil {
		return nil, &InputError{Param: "window", Err: err}
	}
	if ws < 1 {
		return nil, &InputError{Param: "window", Err: errors.Errorf("must be positive, was %d", ws)}
	}
	return []int{ws}, nil
}

func minSupport(supportStr string, configured float64) (float64, error) {
	supportStr = strings.TrimSpace(supportStr)
	if supportStr == "" {
		return configured, nil
	}

	support, err := strconv.ParseFloat(supportStr, 64)
	if err != nil {
		return 0, &InputError{Param: "support", Err: err}
	}
	if support < 0 || support > 1 {
		return 0, &InputError{Param: "support", Err: errors.Errorf("must be within [0, 1], was %g", support)}
	}
	return support, nil
}

func sessionID(idStr string) (string, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return "", &InputError{Param: "session", Err: errors.New("missing")}
	}
	return idStr, nil
}
