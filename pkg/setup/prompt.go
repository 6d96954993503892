package setup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yahsan2/linear-pm/pkg/team"
)

// InteractivePrompt handles interactive user input
type InteractivePrompt struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewInteractivePrompt creates a new InteractivePrompt reading stdin
func NewInteractivePrompt() *InteractivePrompt {
	return NewInteractivePromptWithIO(os.Stdin, os.Stdout)
}

// NewInteractivePromptWithIO creates a prompt over the given reader and writer
func NewInteractivePromptWithIO(in io.Reader, out io.Writer) *InteractivePrompt {
	return &InteractivePrompt{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// ConfirmOverwrite prompts the user to confirm overwriting an existing file
func (p *InteractivePrompt) ConfirmOverwrite(path string) bool {
	fmt.Fprintf(p.out, "Configuration file %s already exists.\n", path)
	fmt.Fprint(p.out, "Do you want to overwrite it? (y/N): ")

	return p.yes(false)
}

// SelectTeam presents the teams and lets the user pick the default one.
// suggested is preselected when the user just presses enter.
func (p *InteractivePrompt) SelectTeam(teams []team.Team, suggested string) *team.Team {
	if len(teams) == 0 {
		return nil
	}

	if len(teams) == 1 {
		fmt.Fprintf(p.out, "Found 1 team: %s (%s)\n", teams[0].Name, teams[0].Key)
		fmt.Fprint(p.out, "Use it as the default team? (Y/n): ")
		if p.yes(true) {
			return &teams[0]
		}
		return nil
	}

	fmt.Fprintln(p.out, "\nAvailable teams:")
	fmt.Fprintln(p.out, strings.Repeat("-", 50))
	for i, t := range teams {
		fmt.Fprintf(p.out, "%2d. %-8s %s\n", i+1, t.Key, truncateString(t.Name, 38))
	}
	fmt.Fprintln(p.out, strings.Repeat("-", 50))
	fmt.Fprintln(p.out, "  0. No default team")

	if suggested != "" {
		fmt.Fprintf(p.out, "\nSelect a team (0-%d or key, default: %s): ", len(teams), suggested)
	} else {
		fmt.Fprintf(p.out, "\nSelect a team (0-%d or key): ", len(teams))
	}

	if !p.scanner.Scan() {
		return findTeam(teams, suggested)
	}
	input := strings.TrimSpace(p.scanner.Text())

	if input == "" {
		return findTeam(teams, suggested)
	}

	if choice, err := strconv.Atoi(input); err == nil {
		if choice >= 1 && choice <= len(teams) {
			return &teams[choice-1]
		}
		if choice != 0 {
			fmt.Fprintln(p.out, "Invalid selection, skipping team selection.")
		}
		return nil
	}

	if t := findTeam(teams, input); t != nil {
		return t
	}

	lower := strings.ToLower(input)
	for i := range teams {
		if strings.Contains(strings.ToLower(teams[i].Name), lower) {
			return &teams[i]
		}
	}

	fmt.Fprintln(p.out, "Invalid selection, skipping team selection.")
	return nil
}

// GetStringInput prompts for a string input with an optional default value
func (p *InteractivePrompt) GetStringInput(prompt string, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s (default: %s): ", prompt, defaultValue)
	} else {
		fmt.Fprintf(p.out, "%s: ", prompt)
	}

	if p.scanner.Scan() {
		input := strings.TrimSpace(p.scanner.Text())
		if input == "" && defaultValue != "" {
			return defaultValue
		}
		return input
	}

	return defaultValue
}

func (p *InteractivePrompt) yes(defaultYes bool) bool {
	if !p.scanner.Scan() {
		return false
	}
	response := strings.ToLower(strings.TrimSpace(p.scanner.Text()))
	if response == "" {
		return defaultYes
	}
	return response == "y" || response == "yes"
}

func findTeam(teams []team.Team, key string) *team.Team {
	if key == "" {
		return nil
	}
	for i := range teams {
		if strings.EqualFold(teams[i].Key, key) {
			return &teams[i]
		}
	}
	return nil
}

// truncateString truncates a string to the specified length with ellipsis
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
