package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	sim "github.com/leaguesim/league-sim/sim"
	"github.com/leaguesim/league-sim/sim/league"
	"github.com/leaguesim/league-sim/sim/report"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// RenderHistory prints the world, each league's latest standings and its titles,
// then a run summary.
func RenderHistory(w io.Writer, s *sim.Simulator, c *report.Chronicle) {
	total := 0
	for _, city := range s.Country.Cities() {
		total += city.Population
	}
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s, %d", s.Country.Name, s.Country.Year())))
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d cities, population %s", len(s.Country.Cities()), humanize.Comma(int64(total)))))
	fmt.Fprintln(w)

	for _, l := range s.Leagues {
		renderLeague(w, l)
		fmt.Fprintln(w)
	}

	sum := report.Summarize(c)
	fmt.Fprintln(w, titleStyle.Render("Summary"))
	fmt.Fprintf(w, "  leagues founded:     %d (%d without charter teams)\n", sum.Leagues, sum.DegenerateFoundings)
	fmt.Fprintf(w, "  seasons played:      %s\n", humanize.Comma(int64(sum.Seasons)))
	fmt.Fprintf(w, "  expansion rounds:    %d (%d franchises, %d replacements)\n", sum.ExpansionRounds, sum.ExpansionFranchises, sum.ReplacementRounds)
	if sum.MostDecoratedTeam != "" {
		fmt.Fprintf(w, "  most decorated:      %s, %d titles\n", sum.MostDecoratedTeam, sum.MostDecoratedTitles)
	}
}

func renderLeague(w io.Writer, l *league.League) {
	hq := l.Headquarters
	fmt.Fprintln(w, titleStyle.Render(l.Name))
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("founded %d, headquartered in %s (pop. %s), %d active / %d defunct teams",
		l.Founded, hq.Name, humanize.Comma(int64(hq.Population)), len(l.Teams), len(l.Defunct))))
	if len(l.Seasons) == 0 {
		fmt.Fprintln(w, "  no seasons played")
		return
	}
	fmt.Fprintln(w, standingsTable(l))

	years := l.Champions.Years()
	first, last := years[0], years[len(years)-1]
	champ, _ := l.Champions.Champion(last)
	fmt.Fprintf(w, "  %d champions: %s (%s title)\n", last, champ.Name(), humanize.Ordinal(len(l.Champions.Titles(champ))))
	fmt.Fprintf(w, "  %d seasons since %d\n", len(years), first)
}

// standingsTable renders the latest season in standings order with franchise history.
func standingsTable(l *league.League) string {
	latest := l.Seasons[len(l.Seasons)-1]
	byName := make(map[string]*league.Team, len(l.Teams)+len(l.Defunct))
	for _, t := range l.Defunct {
		byName[t.Name()] = t
	}
	for _, t := range l.Teams {
		byName[t.Name()] = t
	}

	rows := make([][]string, 0, len(latest.Standings))
	for i, st := range latest.Standings {
		titles, since := "", ""
		if t, ok := byName[st.TeamName]; ok {
			titles = strconv.Itoa(len(l.Champions.Titles(t)))
			since = strconv.Itoa(t.Founded)
			if t.Expansion {
				since += "*"
			}
		}
		rows = append(rows, []string{
			humanize.Ordinal(i + 1),
			st.TeamName,
			strconv.Itoa(st.Wins),
			strconv.Itoa(st.Losses),
			titles,
			since,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderHeader(true).
		BorderRow(false).
		Headers(fmt.Sprint(latest.Year), "Team", "W", "L", "Titles", "Since").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return indent(t.Render(), "  ")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
