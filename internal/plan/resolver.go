package plan

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"go.uber.org/zap"

	"swizzle-generator/internal/analyze"
	"swizzle-generator/internal/diagnostic"
	"swizzle-generator/internal/mapping"
	"swizzle-generator/internal/match"
	"swizzle-generator/internal/swizzle"
)

// ResolutionConfig holds configuration for the resolution process.
type ResolutionConfig struct {
	// AllowConvert emits T(v.F) when a candidate is convertible but not assignable.
	AllowConvert bool
	// WarnThreshold warns when one declaration expands to more accessors (0 = never).
	WarnThreshold int
	// MaxAccessors fails a declaration expanding to more accessors (0 = unlimited).
	MaxAccessors int
	// OutputFile is the generated file name. Previously generated files of that
	// name are hidden from analysis, so their methods never reach the resolver.
	OutputFile string
	// StrictMode turns warnings into errors.
	StrictMode bool
}

// Defaults.
const (
	DefaultWarnThreshold = 1024
	DefaultOutputFile    = "swizzle_gen.go"
)

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{
		WarnThreshold: DefaultWarnThreshold,
		OutputFile:    DefaultOutputFile,
	}
}

// WithOptions overlays the non-zero options of a mapping file.
func (c ResolutionConfig) WithOptions(o mapping.Options) ResolutionConfig {
	if o.Output != "" {
		c.OutputFile = o.Output
	}

	if o.AllowConvert {
		c.AllowConvert = true
	}

	if o.WarnThreshold > 0 {
		c.WarnThreshold = o.WarnThreshold
	}

	if o.MaxAccessors > 0 {
		c.MaxAccessors = o.MaxAccessors
	}

	return c
}

// Resolver binds normalized declarations to the type graph.
type Resolver struct {
	graph  *analyze.TypeGraph
	decls  []*mapping.Declared
	config ResolutionConfig
	logger *zap.Logger
	// claimed maps each receiver to its generated method names, in emission
	// order, and the origin that produced them.
	claimed map[analyze.TypeID]*linkedhashmap.Map
}

// NewResolver creates a new Resolver. A nil logger discards output.
func NewResolver(
	graph *analyze.TypeGraph,
	decls []*mapping.Declared,
	config ResolutionConfig,
	logger *zap.Logger,
) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{
		graph:   graph,
		decls:   decls,
		config:  config,
		logger:  logger,
		claimed: make(map[analyze.TypeID]*linkedhashmap.Map),
	}
}

// Resolve binds every declaration. The plan is always returned so callers
// can report it; the error aggregates the error diagnostics and supports
// errors.Is against the diagnostic families.
func (r *Resolver) Resolve() (*ResolvedPlan, error) {
	plan := &ResolvedPlan{
		Swizzles:  []ResolvedSwizzle{},
		TypeGraph: r.graph,
	}

	for _, d := range r.decls {
		resolved, ok := r.resolveSwizzle(d, &plan.Diagnostics)
		if !ok {
			continue
		}

		plan.Swizzles = append(plan.Swizzles, *resolved)
	}

	if r.config.StrictMode {
		for _, w := range plan.Diagnostics.Warnings {
			w.Severity = diagnostic.DiagnosticError
			plan.Diagnostics.Errors = append(plan.Diagnostics.Errors, w)
		}

		plan.Diagnostics.Warnings = nil
	}

	return plan, plan.Diagnostics.Error()
}

// resolveSwizzle binds one declaration; ok is false if it produced errors.
func (r *Resolver) resolveSwizzle(d *mapping.Declared, diags *diagnostic.Diagnostics) (*ResolvedSwizzle, bool) {
	label := d.Origin + " " + d.TypePair()
	before := len(diags.Errors)

	src := r.resolveStruct(d.Source, d.Home, label, diags)
	dst := r.resolveStruct(d.Spec.Target, d.Home, label, diags)

	if src == nil || dst == nil {
		return nil, false
	}

	rs := &ResolvedSwizzle{
		Origin:     d.Origin,
		SourceType: src,
		TargetType: dst,
		Spec:       d.Spec,
		Naming:     d.Naming,
	}

	r.checkReceiver(rs, label, diags)
	r.bindFields(rs, label, diags)

	if len(diags.Errors) > before {
		return nil, false
	}

	if !r.expand(rs, label, diags) {
		return nil, false
	}

	r.logger.Debug("swizzle bound",
		zap.String("origin", d.Origin),
		zap.String("source", src.ID.String()),
		zap.String("target", dst.ID.String()),
		zap.Int("accessors", len(rs.Accessors)))

	return rs, true
}

func (r *Resolver) resolveStruct(
	ref swizzle.TypeRef,
	home, label string,
	diags *diagnostic.Diagnostics,
) *analyze.TypeInfo {
	t, err := mapping.ResolveTypeID(string(ref), home, r.graph)
	if err != nil {
		diag := diagnostic.Diagnostic{
			Severity:  diagnostic.DiagnosticError,
			Code:      diagnostic.CodeUnknownType,
			Message:   err.Error(),
			TypePair:  label,
			FieldPath: string(ref),
		}

		if !errors.Is(err, mapping.ErrAmbiguousType) {
			_, name := ref.Split()
			diag.Suggestions = match.Suggest(name, mapping.TypeNames(r.graph))
		}

		diags.Add(diag)

		return nil
	}

	if t.Kind != analyze.TypeKindStruct {
		diags.AddError(diagnostic.CodeNotStruct,
			fmt.Sprintf("%s is not a struct type (kind: %s)", analyze.NewTypeStringer(home).TypeString(t), t.Kind),
			label, string(ref))

		return nil
	}

	if named, ok := t.GoType.(*types.Named); ok && named.TypeParams().Len() > 0 {
		diags.AddError(diagnostic.CodeNotStruct,
			fmt.Sprintf("generic type %s is not supported", t.ID), label, string(ref))

		return nil
	}

	return t
}

// checkReceiver rejects sources that a value receiver would copy unsafely
// and targets another package cannot construct.
func (r *Resolver) checkReceiver(rs *ResolvedSwizzle, label string, diags *diagnostic.Diagnostics) {
	src, dst := rs.SourceType, rs.TargetType

	if lock := analyze.LockPath(src.GoType); lock != "" {
		diags.AddError(diagnostic.CodeNotCopyable,
			fmt.Sprintf("%s contains %s and must not be copied by a value receiver", src.ID.Name, lock),
			label, src.ID.Name)
	}

	if src.ID.PkgPath != dst.ID.PkgPath && !token.IsExported(dst.ID.Name) {
		diags.AddError(diagnostic.CodeUnexportedField,
			fmt.Sprintf("%s is unexported and cannot be constructed from package %s", dst.ID, src.ID.PkgPath),
			label, dst.ID.Name)
	}
}

// bindFields checks destination coverage and binds every candidate.
func (r *Resolver) bindFields(rs *ResolvedSwizzle, label string, diags *diagnostic.Diagnostics) {
	src, dst := rs.SourceType, rs.TargetType
	crossPkg := src.ID.PkgPath != dst.ID.PkgPath
	home := packageOf(src)
	names := analyze.NewTypeStringer(src.ID.PkgPath)

	declared := make([]swizzle.FieldName, len(dst.Fields))
	for i := range dst.Fields {
		declared[i] = swizzle.FieldName(dst.Fields[i].Name)
	}

	if missing := rs.Spec.Missing(declared); len(missing) > 0 {
		diags.AddError(diagnostic.CodeIncompleteSpec,
			fmt.Sprintf("destination fields %s of %s are not covered; every accessor must assign all of them",
				joinNames(missing), dst.ID.Name),
			label, dst.ID.Name)
	}

	for _, df := range rs.Spec.Fields {
		path := names.FieldPath(dst.ID.Name, string(df.Name))

		tf, ok := dst.Field(string(df.Name))
		if !ok {
			diags.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.DiagnosticError,
				Code:        diagnostic.CodeUnknownField,
				Message:     fmt.Sprintf("%s has no field %s", dst.ID.Name, df.Name),
				TypePair:    label,
				FieldPath:   path,
				Suggestions: match.SuggestFields(string(df.Name), nil, dst.Fields, home),
			})

			continue
		}

		if crossPkg && !tf.Exported {
			diags.AddError(diagnostic.CodeUnexportedField,
				fmt.Sprintf("field %s is unexported and cannot be set from package %s", path, src.ID.PkgPath),
				label, path)

			continue
		}

		bound := ResolvedField{Name: df.Name, Target: tf}

		for _, c := range df.Candidates {
			if s, ok := r.bindCandidate(rs, tf, c, label, diags); ok {
				bound.Sources = append(bound.Sources, s)
			}
		}

		rs.Fields = append(rs.Fields, bound)
	}
}

func (r *Resolver) bindCandidate(
	rs *ResolvedSwizzle,
	tf *analyze.FieldInfo,
	candidate swizzle.FieldName,
	label string,
	diags *diagnostic.Diagnostics,
) (ResolvedSource, bool) {
	src := rs.SourceType
	home := packageOf(src)
	path := analyze.NewTypeStringer(src.ID.PkgPath).FieldPath(src.ID.Name, string(candidate))

	sf, ok := src.Field(string(candidate))
	if !ok {
		diags.Add(diagnostic.Diagnostic{
			Severity:    diagnostic.DiagnosticError,
			Code:        diagnostic.CodeUnknownField,
			Message:     fmt.Sprintf("%s has no field %s (candidate for %s)", src.ID.Name, candidate, tf.Name),
			TypePair:    label,
			FieldPath:   path,
			Suggestions: match.SuggestFields(string(candidate), goType(tf), src.Fields, home),
		})

		return ResolvedSource{}, false
	}

	if goType(sf) == nil || goType(tf) == nil {
		diags.AddError(diagnostic.CodeTypeMismatch, "type information unavailable", label, path)
		return ResolvedSource{}, false
	}

	compat := match.ScoreTypeCompatibility(goType(sf), goType(tf), home)

	switch {
	case compat.Compatibility.Direct():
		return ResolvedSource{Field: sf, Strategy: StrategyDirectAssign}, true

	case compat.Compatibility == match.TypeConvertible && r.config.AllowConvert:
		if obj := namedObj(goType(tf)); obj != nil && obj.Pkg() != home && !obj.Exported() {
			diags.AddError(diagnostic.CodeUnexportedField,
				fmt.Sprintf("conversion to %s needs an unexported type", compat.TargetType), label, path)

			return ResolvedSource{}, false
		}

		return ResolvedSource{Field: sf, Strategy: StrategyConvert, ConvertTo: goType(tf)}, true

	case compat.Compatibility == match.TypeConvertible:
		diags.AddError(diagnostic.CodeTypeMismatch,
			fmt.Sprintf("%s is %s but %s.%s is %s; enable allow_convert to emit %s(...)",
				path, compat.SourceType, rs.TargetType.ID.Name, tf.Name, compat.TargetType, compat.TargetType),
			label, path)

	default:
		diags.AddError(diagnostic.CodeTypeMismatch,
			fmt.Sprintf("%s cannot feed %s.%s: %s", path, rs.TargetType.ID.Name, tf.Name, compat.Reason),
			label, path)
	}

	return ResolvedSource{}, false
}

// expand counts and materializes accessors, then checks their names against
// the receiver. ok is false if it produced errors.
func (r *Resolver) expand(rs *ResolvedSwizzle, label string, diags *diagnostic.Diagnostics) bool {
	n, fits := swizzle.Count(rs.Spec)
	if !fits {
		diags.AddError(diagnostic.CodeTooManyMethods,
			"accessor count overflows; reduce the candidate lists", label, "")

		return false
	}

	if r.config.MaxAccessors > 0 && n > uint64(r.config.MaxAccessors) {
		diags.AddError(diagnostic.CodeTooManyMethods,
			fmt.Sprintf("expands to %d accessors, more than max_accessors %d", n, r.config.MaxAccessors),
			label, "")

		return false
	}

	if r.config.WarnThreshold > 0 && n > uint64(r.config.WarnThreshold) {
		diags.AddWarning(diagnostic.CodeLargeExpansion,
			fmt.Sprintf("expands to %d accessors (warn_threshold %d)", n, r.config.WarnThreshold),
			label, "")
	}

	accs, err := swizzle.Accessors(rs.Spec, rs.Naming)
	if err != nil {
		diags.AddErr(err, label, "")
		return false
	}

	src := rs.SourceType
	before := len(diags.Errors)

	claimed := r.claimed[src.ID]
	if claimed == nil {
		claimed = linkedhashmap.New()
		r.claimed[src.ID] = claimed
	}

	for _, acc := range accs {
		path := src.ID.Name + "." + acc.Name

		if _, ok := src.Field(acc.Name); ok {
			diags.AddError(diagnostic.CodeNameCollision,
				fmt.Sprintf("method %s would share its name with field %s", acc.Name, path), label, path)

			continue
		}

		if m, ok := src.Method(acc.Name); ok {
			diags.AddError(diagnostic.CodeNameCollision,
				fmt.Sprintf("method %s is already declared in %s", path, m.File), label, path)

			continue
		}

		if other, ok := claimed.Get(acc.Name); ok {
			diags.AddError(diagnostic.CodeNameCollision,
				fmt.Sprintf("method %s is also generated by %s", path, other), label, path)

			continue
		}
	}

	if len(diags.Errors) > before {
		return false
	}

	for _, acc := range accs {
		claimed.Put(acc.Name, rs.Origin)
	}

	rs.Accessors = accs

	return true
}

func packageOf(t *analyze.TypeInfo) *types.Package {
	if obj := namedObj(t.GoType); obj != nil {
		return obj.Pkg()
	}

	return nil
}

func namedObj(t types.Type) *types.TypeName {
	if named, ok := types.Unalias(t).(*types.Named); ok {
		return named.Obj()
	}

	return nil
}

func goType(f *analyze.FieldInfo) types.Type {
	if f == nil || f.Type == nil {
		return nil
	}

	return f.Type.GoType
}

func joinNames(names []swizzle.FieldName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}

	return strings.Join(parts, ", ")
}

// Claimed returns the method names generated so far for a receiver, in
// emission order.
func (r *Resolver) Claimed(id analyze.TypeID) []string {
	claimed := r.claimed[id]
	if claimed == nil {
		return nil
	}

	names := make([]string, 0, claimed.Size())
	for _, k := range claimed.Keys() {
		names = append(names, k.(string))
	}

	return names
}
