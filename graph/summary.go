package graph

// Summary reports what a store did when applying one operation.
//
// A link operation whose endpoints matched nothing yields a zero Summary and
// no error. Comparing links attempted with RelationshipsCreated is how a
// caller tells intended omission apart from a planning defect.
type Summary struct {
	NodesCreated         int `json:"nodes_created"`
	RelationshipsCreated int `json:"relationships_created"`
	PropertiesSet        int `json:"properties_set"`
}

// Add accumulates other into s.
func (s *Summary) Add(other Summary) {
	s.NodesCreated += other.NodesCreated
	s.RelationshipsCreated += other.RelationshipsCreated
	s.PropertiesSet += other.PropertiesSet
}
