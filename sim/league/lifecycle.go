package league

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/leaguesim/league-sim/sim/report"
	"github.com/leaguesim/league-sim/sim/world"
)

// Found creates a league in country: picks an unused name, a headquarters city and a
// charter class drawn from the weighted city lottery. The league keeps rng for every
// later draw. A league whose lottery yields no city is returned with
// FormationReport.Degenerate set; it is not an error.
func Found(country Country, cfg *Config, factory TeamFactory, rng *rand.Rand) (*League, report.FormationReport, error) {
	if factory == nil {
		panic("Found: TeamFactory is nil")
	}
	cities := country.Cities()
	if len(cities) == 0 {
		return nil, report.FormationReport{}, ErrEmptyWorld
	}

	name, err := chooseName(country, cfg, rng)
	if err != nil {
		return nil, report.FormationReport{}, err
	}
	hq, err := chooseHeadquarters(cities, cfg, rng)
	if err != nil {
		return nil, report.FormationReport{}, err
	}

	l := &League{
		Name:         name,
		Founded:      country.Year(),
		Headquarters: hq,
		Teams:        make([]*Team, 0),
		Defunct:      make([]*Team, 0),
		Seasons:      make([]report.SeasonReport, 0),
		Champions:    NewChampionsTimeline(),
		enfranchised: make(map[world.CityID]bool),
		phase:        PhaseFormed,
		country:      country,
		cfg:          cfg,
		factory:      factory,
		rng:          rng,
	}

	size := max(0, cfg.CharterSize.SampleInt(rng))
	pool := NewCandidatePool(rng, l.valuate(), hq.Population, cfg.ThresholdExponent)
	logrus.Debugf("[year %d] %s: charter lottery over %d cities (multiset size %d), drawing %d",
		l.Founded, name, pool.Len(), pool.Size(), size)
	for _, city := range pool.Draw(rng, size) {
		l.enfranchise(city, false)
	}
	l.charter = make([]*Team, len(l.Teams))
	copy(l.charter, l.Teams)
	country.RegisterLeagueName(name)

	rep := report.FormationReport{
		Year:             l.Founded,
		LeagueName:       name,
		HeadquartersName: hq.Name,
		CharterTeamNames: make([]string, len(l.charter)),
		Degenerate:       len(l.charter) == 0,
	}
	for i, t := range l.charter {
		rep.CharterTeamNames[i] = t.Name()
	}
	if rep.Degenerate {
		logrus.Warnf("[year %d] %s formed in %s without a single charter team", l.Founded, name, hq.Name)
	} else {
		logrus.Infof("[year %d] %s formed in %s with %d charter teams", l.Founded, name, hq.Name, len(l.charter))
	}
	return l, rep, nil
}

// chooseName draws "<prefix> <stem>" until the name is unused in country.
func chooseName(country Country, cfg *Config, rng *rand.Rand) (string, error) {
	for attempt := 0; attempt < cfg.MaxNameAttempts; attempt++ {
		name := pickWeighted(rng, cfg.NamePrefixes) + " " + pickWeighted(rng, cfg.NameStems)
		if !country.HasLeagueName(name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrNameSpaceExhausted, cfg.MaxNameAttempts)
}

func pickWeighted(rng *rand.Rand, names []WeightedName) string {
	total := 0
	for _, n := range names {
		total += n.Weight
	}
	x := rng.Intn(total)
	for _, n := range names {
		if x < n.Weight {
			return n.Name
		}
		x -= n.Weight
	}
	return names[len(names)-1].Name
}

// chooseHeadquarters picks a city by population rank. The rank is drawn from
// HeadquartersRank and, while below 1, redrawn from HeadquartersRankResample.
// The two distributions differ on purpose: that is the historical behavior.
// Ranks past the smallest city clamp to it; equal populations keep city order.
func chooseHeadquarters(cities []*world.City, cfg *Config, rng *rand.Rand) (*world.City, error) {
	ranked := make([]*world.City, len(cities))
	copy(ranked, cities)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Population > ranked[j].Population
	})

	n := cfg.HeadquartersRank.SampleInt(rng)
	for attempts := 0; n < 1; attempts++ {
		if attempts >= cfg.MaxRankAttempts {
			return nil, fmt.Errorf("%w after %d attempts", ErrRankExhausted, cfg.MaxRankAttempts)
		}
		n = cfg.HeadquartersRankResample.SampleInt(rng)
	}
	if n >= len(ranked) {
		n = len(ranked) - 1
	}
	return ranked[n], nil
}

// ConductSeason plays the current year's season through season, folds the final
// tallies into every team's history, records the champion and resets the
// per-season counters. It fails with ErrEmptyLeague when the league has no teams.
func (l *League) ConductSeason(season Season) (report.SeasonReport, error) {
	year := l.Year()
	if l.phase == PhaseSeasonActive {
		return report.SeasonReport{}, fmt.Errorf("%w: %s already closed a season and awaits its offseason", ErrPhase, l.Name)
	}
	if len(l.Teams) == 0 {
		return report.SeasonReport{}, fmt.Errorf("%s, %d: %w", l.Name, year, ErrEmptyLeague)
	}
	if l.Champions.Has(year) {
		return report.SeasonReport{}, fmt.Errorf("%s: %w: %d", l.Name, ErrSeasonAlreadyRecorded, year)
	}

	result, err := season.Run(l, l.rng)
	if err != nil {
		return report.SeasonReport{}, fmt.Errorf("%s, %d season: %w", l.Name, year, err)
	}
	if result.Champion == nil || !l.isActive(result.Champion) {
		return report.SeasonReport{}, fmt.Errorf("%s, %d season: champion: %w", l.Name, year, ErrUnknownTeam)
	}

	for _, t := range l.Teams {
		rec := result.Records[t]
		t.Wins, t.Losses = rec.Wins, rec.Losses
		t.CumulativeWins += rec.Wins
		t.CumulativeLosses += rec.Losses
		t.Records[year] = rec
	}
	if err := l.Champions.Record(year, result.Champion); err != nil {
		return report.SeasonReport{}, err
	}

	SortStandings(l.Teams)
	rep := report.SeasonReport{
		Year:       year,
		LeagueName: l.Name,
		Champion:   result.Champion.Name(),
		Standings:  standingsRows(l.Teams),
	}
	l.Seasons = append(l.Seasons, rep)

	for _, t := range l.Teams {
		t.Wins, t.Losses = 0, 0
	}
	l.phase = PhaseSeasonActive
	logrus.Infof("[year %d] %s champions: %s", year, l.Name, rep.Champion)
	return rep, nil
}

// ConductOffseason progresses every team that has played, then considers expansion.
func (l *League) ConductOffseason() (report.ExpansionReport, error) {
	if l.phase == PhaseOffseason {
		return report.ExpansionReport{}, fmt.Errorf("%w: %s already ran its offseason", ErrPhase, l.Name)
	}
	year := l.Year()
	for _, t := range l.Teams {
		if t.CumulativeGames() > 0 && t.Franchise != nil {
			t.Franchise.Progress(l.rng, year)
		}
	}
	l.phase = PhaseOffseason
	return l.ConsiderExpansion(false), nil
}

// ConsiderExpansion runs one expansion round. Outside a replacement, the room left
// under a freshly sampled size ceiling decides how likely the gate opens; a
// replacement round uses ReplacementRoom, which always opens it. An open gate
// draws ExpansionDraws new expansion franchises from the city lottery.
func (l *League) ConsiderExpansion(forceReplace bool) report.ExpansionReport {
	year := l.Year()
	rep := report.ExpansionReport{
		Year:               year,
		LeagueName:         l.Name,
		Replacement:        forceReplace,
		NewFranchiseCities: make([]string, 0),
	}

	var room int
	if forceReplace {
		room = l.cfg.ReplacementRoom
	} else {
		ceiling := l.cfg.ExpansionCeiling.SampleInt(l.rng)
		room = max(0, ceiling-len(l.Teams))
	}
	x := l.rng.Intn(l.cfg.ExpansionGateMax + 1)
	if x > room {
		logrus.Debugf("[year %d] %s: expansion gate closed (x=%d, room=%d)", year, l.Name, x, room)
		return rep
	}
	rep.GatePassed = true

	pool := NewCandidatePool(l.rng, l.valuate(), l.Headquarters.Population, l.cfg.ThresholdExponent)
	n := max(0, l.cfg.ExpansionDraws.SampleInt(l.rng))
	for _, city := range pool.Draw(l.rng, n) {
		if l.enfranchise(city, true) != nil {
			rep.NewFranchiseCities = append(rep.NewFranchiseCities, city.Name)
		}
	}
	if len(rep.NewFranchiseCities) == 0 {
		logrus.Debugf("[year %d] %s: expansion gate open but no city drawn (pool %d, wanted %d)", year, l.Name, pool.Len(), n)
	} else {
		logrus.Infof("[year %d] %s expands to %v", year, l.Name, rep.NewFranchiseCities)
	}
	return rep
}

// Fold retires team: it moves to Defunct, its city becomes eligible again and a
// replacement round runs immediately.
func (l *League) Fold(team *Team) (report.ExpansionReport, error) {
	idx := -1
	for i, t := range l.Teams {
		if t == team {
			idx = i
			break
		}
	}
	if idx < 0 {
		return report.ExpansionReport{}, fmt.Errorf("fold %s: %w", team.Name(), ErrUnknownTeam)
	}
	l.Teams = append(l.Teams[:idx], l.Teams[idx+1:]...)
	l.Defunct = append(l.Defunct, team)
	delete(l.enfranchised, team.City.ID)
	logrus.Infof("[year %d] %s: %s folds", l.Year(), l.Name, team.Name())
	return l.ConsiderExpansion(true), nil
}

func (l *League) isActive(team *Team) bool {
	for _, t := range l.Teams {
		if t == team {
			return true
		}
	}
	return false
}
