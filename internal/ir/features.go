package ir

// Feature tags recorded by AnalyzeFeatures. They describe which optional
// target-engine capabilities a pattern relies on; nothing downstream makes
// correctness decisions from them.
const (
	FeatureNamedGroup      = "named_group"
	FeatureAtomicGroup     = "atomic_group"
	FeaturePossessive      = "possessive_quantifier"
	FeatureLookahead       = "lookahead"
	FeatureLookbehind      = "lookbehind"
	FeatureBackreference   = "backreference"
	FeatureUnicodeProperty = "unicode_property"
)

// AnalyzeFeatures folds over the tree and returns the set of feature tags it
// uses. The fold is pure: child sets merge upward, no state is threaded
// through the traversal.
func AnalyzeFeatures(n Node) map[string]bool {
	features := map[string]bool{}
	merge := func(child Node) {
		for tag := range AnalyzeFeatures(child) {
			features[tag] = true
		}
	}

	switch n := n.(type) {
	case *Seq:
		for _, p := range n.Parts {
			merge(p)
		}
	case *Alt:
		for _, b := range n.Branches {
			merge(b)
		}
	case *Quant:
		if n.Mode == Possessive {
			features[FeaturePossessive] = true
		}
		merge(n.Child)
	case *Group:
		if n.Name != "" {
			features[FeatureNamedGroup] = true
		}
		if n.Atomic {
			features[FeatureAtomicGroup] = true
		}
		merge(n.Body)
	case *Backref:
		features[FeatureBackreference] = true
	case *Look:
		if n.Dir == Behind {
			features[FeatureLookbehind] = true
		} else {
			features[FeatureLookahead] = true
		}
		merge(n.Body)
	case *CharClass:
		for _, it := range n.Items {
			if esc, ok := it.(*ClassEscape); ok && (esc.Kind == 'p' || esc.Kind == 'P') {
				features[FeatureUnicodeProperty] = true
			}
		}
	}
	return features
}
