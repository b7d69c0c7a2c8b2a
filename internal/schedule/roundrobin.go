package schedule

import "math/rand"

// Matchup is a single scheduled game between two teams, identified by their
// 0-based team codes.
type Matchup struct {
	Home int
	Away int
}

// Pair is an unordered pair of team codes with A < B.
type Pair struct {
	A, B int
}

// Pair returns the normalized team pair for the matchup.
func (m Matchup) Pair() Pair {
	if m.Home > m.Away {
		return Pair{m.Away, m.Home}
	}
	return Pair{m.Home, m.Away}
}

// ExpectedGames returns the number of matchups RoundRobin produces for the
// given inputs.
func ExpectedGames(numTeams, gamesPerTeamPair int) int {
	if numTeams < 2 || gamesPerTeamPair < 1 {
		return 0
	}
	return gamesPerTeamPair * numTeams * (numTeams - 1) / 2
}

// RoundRobin generates every pairing of numTeams teams gamesPerTeamPair
// times. Each pass walks currTeam upward and pairs it only with higher
// codes, so a pair shows up once per pass. Home/away is decided by a fair
// coin flip per matchup: heads puts currTeam at home.
//
// Fewer than two teams yields no matchups. No upper bound is enforced here.
func RoundRobin(numTeams, gamesPerTeamPair int, rng *rand.Rand) []Matchup {
	games := make([]Matchup, 0, ExpectedGames(numTeams, gamesPerTeamPair))

	for pass := 0; pass < gamesPerTeamPair; pass++ {
		for curr := 0; curr < numTeams; curr++ {
			for opp := curr + 1; opp < numTeams; opp++ {
				home, away := curr, opp
				if rng.Intn(2) == 0 {
					home, away = opp, curr
				}
				games = append(games, Matchup{Home: home, Away: away})
			}
		}
	}

	return games
}
