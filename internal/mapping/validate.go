package mapping

import (
	"fmt"
	"path/filepath"
	"strings"

	"swizzle-generator/internal/diagnostic"
)

// Validate checks a mapping file without looking at any Go code: options are
// sane and every entry normalizes. Type and field checks happen at binding.
func Validate(mf *MappingFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError(diagnostic.CodeMalformedSpec, "mapping file is nil", "", "")
		return res
	}

	validateOptions(res, &mf.Options)

	if len(mf.Entries) == 0 {
		res.AddWarning(diagnostic.CodeMalformedSpec, "mapping file declares no swizzles", "", "")
	}

	seen := map[string]int{}

	for i := range mf.Entries {
		e := &mf.Entries[i]
		origin := fmt.Sprintf("swizzles[%d]", i)

		d, err := e.Declare(origin)
		if err != nil {
			res.AddErr(err, e.TypePair(), origin)
			continue
		}

		key := declarationKey(d)
		if first, ok := seen[key]; ok {
			res.AddError(diagnostic.CodeNameCollision,
				fmt.Sprintf("same declaration as swizzles[%d]; every accessor would be generated twice", first),
				e.TypePair(), origin)

			continue
		}

		seen[key] = i
	}

	return res
}

// declarationKey identifies a declaration by everything that shapes its
// accessors: receiver, normalized spec and name decoration. Distinct
// declarations on one receiver may still produce a shared name; the resolver
// reports those per accessor.
func declarationKey(d *Declared) string {
	var sb strings.Builder

	sb.WriteString(string(d.Source))
	sb.WriteString("\x00" + string(d.Spec.Target))
	sb.WriteString("\x00" + d.Naming.Prefix + "\x00" + d.Naming.Suffix)

	for _, f := range d.Spec.Fields {
		sb.WriteString("\x00" + string(f.Name) + ":")

		for _, c := range f.Candidates {
			sb.WriteString(string(c) + ",")
		}
	}

	return sb.String()
}

func validateOptions(res *diagnostic.Diagnostics, o *Options) {
	if o.Output != "" {
		if filepath.Base(o.Output) != o.Output {
			res.AddError(diagnostic.CodeMalformedSpec,
				fmt.Sprintf("output %q must be a file name, not a path", o.Output), "", "options.output")
		} else if !strings.HasSuffix(o.Output, ".go") || strings.HasSuffix(o.Output, "_test.go") {
			res.AddError(diagnostic.CodeMalformedSpec,
				fmt.Sprintf("output %q must be a non-test .go file", o.Output), "", "options.output")
		}
	}

	if o.WarnThreshold < 0 {
		res.AddError(diagnostic.CodeMalformedSpec, "warn_threshold must not be negative", "", "options.warn_threshold")
	}

	if o.MaxAccessors < 0 {
		res.AddError(diagnostic.CodeMalformedSpec, "max_accessors must not be negative", "", "options.max_accessors")
	}
}
