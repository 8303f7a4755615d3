package report

// Sink receives reports as the simulation produces them.
type Sink interface {
	RecordFormation(r FormationReport) error
	RecordSeason(r SeasonReport) error
	RecordExpansion(r ExpansionReport) error
}

// Chronicle collects every report of a simulation run in production order.
type Chronicle struct {
	Seed       int64             `json:"seed"`
	Formations []FormationReport `json:"formations"`
	Seasons    []SeasonReport    `json:"seasons"`
	Expansions []ExpansionReport `json:"expansions"`
}

// NewChronicle creates a Chronicle ready for recording.
func NewChronicle(seed int64) *Chronicle {
	return &Chronicle{
		Seed:       seed,
		Formations: make([]FormationReport, 0),
		Seasons:    make([]SeasonReport, 0),
		Expansions: make([]ExpansionReport, 0),
	}
}

// RecordFormation appends a formation report.
func (c *Chronicle) RecordFormation(r FormationReport) error {
	c.Formations = append(c.Formations, r)
	return nil
}

// RecordSeason appends a season report.
func (c *Chronicle) RecordSeason(r SeasonReport) error {
	c.Seasons = append(c.Seasons, r)
	return nil
}

// RecordExpansion appends an expansion report.
func (c *Chronicle) RecordExpansion(r ExpansionReport) error {
	c.Expansions = append(c.Expansions, r)
	return nil
}

// MultiSink fans reports out to several sinks, stopping at the first error.
type MultiSink []Sink

func (m MultiSink) RecordFormation(r FormationReport) error {
	for _, s := range m {
		if err := s.RecordFormation(r); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiSink) RecordSeason(r SeasonReport) error {
	for _, s := range m {
		if err := s.RecordSeason(r); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiSink) RecordExpansion(r ExpansionReport) error {
	for _, s := range m {
		if err := s.RecordExpansion(r); err != nil {
			return err
		}
	}
	return nil
}
