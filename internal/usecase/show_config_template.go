package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/rscheck/internal/domain"
)

// ShowConfigTemplateInput contains the input for the ShowConfigTemplate use case.
type ShowConfigTemplateInput struct {
	// Current fills the template with the effective configuration instead of
	// the built-in defaults. Config files are then read and must be valid.
	Current bool
}

// ShowConfigTemplateOutput contains the output of the ShowConfigTemplate use case.
type ShowConfigTemplateOutput struct {
	Template string
	Current  bool
}

// ShowConfigTemplate renders the commented configuration file.
type ShowConfigTemplate struct {
	loader domain.ConfigLoader
}

// NewShowConfigTemplate creates a new ShowConfigTemplate use case.
func NewShowConfigTemplate(loader domain.ConfigLoader) *ShowConfigTemplate {
	return &ShowConfigTemplate{loader: loader}
}

// Execute renders the template. Without Current no file is read, so it works
// even when the config files are broken.
func (uc *ShowConfigTemplate) Execute(_ context.Context, in ShowConfigTemplateInput) (*ShowConfigTemplateOutput, error) {
	if !in.Current {
		return &ShowConfigTemplateOutput{Template: domain.RenderConfigTemplate(domain.NewDefaultConfig())}, nil
	}

	cfg, err := uc.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg == nil {
		return nil, domain.ErrConfigNil
	}
	return &ShowConfigTemplateOutput{Template: domain.RenderConfigTemplate(cfg), Current: true}, nil
}
