package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PipelineMode selects how entries reach the archive writer.
type PipelineMode string

const (
	// every worker reads and appends on its own, appends serialized by a lock
	PIPELINE_FANOUT PipelineMode = "fanout"
	// one producer enumerates into a bounded queue, one consumer appends
	PIPELINE_PIPE PipelineMode = "pipe"
)

func (m PipelineMode) String() string {
	return string(m)
}

func ParsePipelineMode(s string) (PipelineMode, error) {
	m := PipelineMode(strings.ToLower(s))
	switch m {
	case PIPELINE_FANOUT, PIPELINE_PIPE:
		return m, nil
	default:
		return "", fmt.Errorf("invalid pipeline mode: %s. supported modes: %s, %s", s, PIPELINE_FANOUT, PIPELINE_PIPE)
	}
}

func (m *PipelineMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePipelineMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// UIMode selects the progress display.
type UIMode string

const (
	UI_AUTO  UIMode = "auto"
	UI_TEA   UIMode = "tea"
	UI_PLAIN UIMode = "plain"
	UI_NONE  UIMode = "none"
)

func (u UIMode) String() string {
	return string(u)
}

func ParseUIMode(s string) (UIMode, error) {
	u := UIMode(strings.ToLower(s))
	switch u {
	case UI_AUTO, UI_TEA, UI_PLAIN, UI_NONE:
		return u, nil
	default:
		return "", fmt.Errorf("invalid ui: %s. supported values: auto, tea, plain, none", s)
	}
}

func (u *UIMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseUIMode(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
