package skill

// Category classifies a catalog skill. Peer review ratings use a wider set
// that additionally includes innovation; that set lives with the review
// lifecycle.
type Category string

const (
	CategoryTechnical Category = "technical"
	CategorySoft      Category = "soft"
	CategoryProcess   Category = "process"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryTechnical, CategorySoft, CategoryProcess:
		return true
	}
	return false
}
