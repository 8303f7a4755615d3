package league

import "errors"

var (
	// ErrEmptyWorld is returned when a league is founded in a country without cities.
	ErrEmptyWorld = errors.New("country has no cities")
	// ErrEmptyLeague is returned when a season is scheduled for a league with no teams.
	// It indicates a scheduling bug in the driving simulation.
	ErrEmptyLeague = errors.New("league has no teams")
	// ErrNameSpaceExhausted is returned when no unused league name was found within the retry cap.
	ErrNameSpaceExhausted = errors.New("league name space exhausted")
	// ErrRankExhausted is returned when the headquarters rank never reached 1 within the retry cap.
	ErrRankExhausted = errors.New("headquarters rank resampling exhausted")
	// ErrSeasonAlreadyRecorded is returned when a champion already exists for the year.
	ErrSeasonAlreadyRecorded = errors.New("season already recorded for year")
	// ErrPhase is returned when a lifecycle step is invoked out of order.
	ErrPhase = errors.New("lifecycle step out of order")
	// ErrUnknownTeam is returned when a team is not an active member of the league.
	ErrUnknownTeam = errors.New("team is not an active member of the league")
)
