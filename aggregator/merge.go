package aggregator

import (
	"github.com/erraggy/annodoc/model"
)

// mergeOperation folds other into base. Scalars keep the first non-empty
// value; sets are unioned; parameters and bodies are appended unless base
// already has one with the same identity.
func mergeOperation(base, other *model.Operation) {
	if base.Summary == "" {
		base.Summary = other.Summary
	}
	if base.Group == "" {
		base.Group = other.Group
	}
	if base.DeprecatedSince == "" {
		base.DeprecatedSince = other.DeprecatedSince
	}
	if base.Description == nil {
		base.Description = other.Description
	}
	base.Tags = model.SortedSet(append(base.Tags, other.Tags...))
	base.Servers = model.SortedSet(append(base.Servers, other.Servers...))

	base.Path.Params = mergeParams(base.Path.Params, other.Path.Params)
	base.Queries = mergeParams(base.Queries, other.Queries)
	base.Headers = mergeParams(base.Headers, other.Headers)
	base.Requests = mergeBodies(base.Requests, other.Requests)
	base.Responses = mergeBodies(base.Responses, other.Responses)
}

func mergeParams(base, other []*model.Parameter) []*model.Parameter {
	for _, p := range other {
		if model.FindParam(base, p.Name) == nil {
			base = append(base, p)
		}
	}
	return base
}

func mergeBodies(base, other []*model.Body) []*model.Body {
	for _, b := range other {
		found := false
		for _, existing := range base {
			if existing.Status == b.Status && existing.Mimetype == b.Mimetype && existing.Name == b.Name {
				found = true
				break
			}
		}
		if !found {
			base = append(base, b)
		}
	}
	return base
}
