package resolve

import (
	"context"
	"fmt"

	"github.com/goliatone/go-typeinput/internal/param"
	"github.com/goliatone/go-typeinput/pkg/declaration"
)

// resolveChoices extracts the fixed or dynamically sourced option set from
// the tag list. The three source kinds are mutually exclusive. Dynamic
// sources are invoked eagerly, once, at analysis time; their failures
// propagate unchanged.
func resolveChoices(ctx context.Context, kind declaration.Kind, tags []declaration.Tag) (*param.ResolvedChoices, error) {
	var source declaration.Tag
	for _, tag := range tags {
		switch tag.(type) {
		case declaration.EnumTag, declaration.OneOfTag, declaration.DynamicTag:
			if source != nil {
				return nil, param.ErrConflictingChoiceSource
			}
			source = tag
		}
	}

	switch t := source.(type) {
	case nil:
		return nil, nil

	case declaration.EnumTag:
		values := make([]any, len(t.Members))
		for i, member := range t.Members {
			values[i] = member.Value
		}
		options, err := param.CanonicalOptions(kind, values)
		if err != nil {
			return nil, fmt.Errorf("%w: enum %q: %v", param.ErrMalformedDeclaration, t.Name, err)
		}
		return &param.ResolvedChoices{
			Options: options,
			Enum:    t.Name,
			Members: append([]declaration.Member(nil), t.Members...),
		}, nil

	case declaration.OneOfTag:
		options, err := param.CanonicalOptions(kind, t.Values)
		if err != nil {
			return nil, fmt.Errorf("%w: literal choices: %v", param.ErrMalformedDeclaration, err)
		}
		return &param.ResolvedChoices{Options: options}, nil

	case declaration.DynamicTag:
		if t.Options == nil {
			return nil, fmt.Errorf("%w: dynamic choice source without a callable", param.ErrMalformedDeclaration)
		}
		raw, err := t.Options(ctx)
		if err != nil {
			// The callable's failure is the analysis failure.
			return nil, err
		}
		options, err := param.CanonicalOptions(kind, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: dynamic choices: %v", param.ErrMalformedDeclaration, err)
		}
		return &param.ResolvedChoices{Options: options, Source: t.Options}, nil
	}

	return nil, nil
}
