package param

import (
	"context"
	"fmt"
)

// RefreshOption customises a RefreshChoices call.
type RefreshOption func(*refreshConfig)

type refreshConfig struct {
	skipDefaultValidation bool
}

// SkipDefaultValidation disables the post-refresh check that the current
// default is still a member of the refreshed option set. Use it when the
// caller intends to overwrite the default separately.
func SkipDefaultValidation() RefreshOption {
	return func(cfg *refreshConfig) { cfg.skipDefaultValidation = true }
}

// RefreshChoices re-invokes the stored dynamic choice source and replaces the
// option set in place. It is only available for dynamic sources. By default
// the current default value is re-validated against the refreshed set.
//
// RefreshChoices is not internally synchronised.
func (m *Metadata) RefreshChoices(ctx context.Context, opts ...RefreshOption) error {
	var cfg refreshConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if m.Choices == nil || m.Choices.Source == nil {
		return fmt.Errorf("refresh %q: %w", m.Name, ErrRefreshUnsupported)
	}

	raw, err := m.Choices.Source(ctx)
	if err != nil {
		// The callable's failure surfaces unchanged as the refresh failure.
		return fmt.Errorf("refresh %q: %w", m.Name, err)
	}

	options, err := CanonicalOptions(m.Type, raw)
	if err != nil {
		return fmt.Errorf("refresh %q: %w: %v", m.Name, ErrMalformedDeclaration, err)
	}

	if !cfg.skipDefaultValidation && m.Default != nil {
		if err := m.checkDefaultMembership(options); err != nil {
			return fmt.Errorf("refresh %q: %w", m.Name, err)
		}
	}

	m.Choices.Options = options
	return nil
}

func (m *Metadata) checkDefaultMembership(options []any) error {
	contains := func(v any) bool {
		for _, opt := range options {
			if equalValue(opt, v) {
				return true
			}
		}
		return false
	}

	if m.List != nil {
		if items, ok := m.Default.([]any); ok {
			for i, item := range items {
				if !contains(item) {
					return fmt.Errorf("%w: list item [%d] %v not in %v", ErrDefaultNotInOptions, i, item, options)
				}
			}
			return nil
		}
	}
	if !contains(m.Default) {
		return fmt.Errorf("%w: %v not in %v", ErrDefaultNotInOptions, m.Default, options)
	}
	return nil
}
