package roller

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Command describes one chat command exposed by the roller.
type Command struct {
	Name    string
	Aliases []string
	Short   string
	Desc    string
	Example string
}

var commandList = []Command{
	{
		Name:    "roll",
		Short:   "Roll some dice, using D&D syntax.",
		Desc:    "Rolls every <count>d<size> expression given. Invalid or oversized expressions are skipped.",
		Example: "roll 5d6, roll 1d20 2d8",
	},
	{
		Name:    "coin",
		Aliases: []string{"cflip", "coinflip"},
		Short:   "Flip a coin.",
		Desc:    "Answers Heads! or Tails!.",
		Example: "coin",
	},
	{
		Name:    "help",
		Aliases: []string{"commands"},
		Short:   "List commands, or describe one.",
		Desc:    "Without arguments lists every command; with a command name shows its details.",
		Example: "help, help roll",
	},
}

// Commands returns the command catalogue sorted by name.
func Commands() []Command {
	out := make([]Command, len(commandList))
	copy(out, commandList)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LookupCommand resolves a command by name or alias, case-insensitively.
func LookupCommand(name string) (Command, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, command := range commandList {
		if command.Name == name {
			return command, true
		}
		for _, alias := range command.Aliases {
			if alias == name {
				return command, true
			}
		}
	}
	return Command{}, false
}

// HelpText lists every command, or details the named ones.
func HelpText(names ...string) string {
	if len(names) == 0 {
		commands := Commands()
		list := make([]string, 0, len(commands))
		for _, command := range commands {
			list = append(list, command.Name)
		}
		return "**List of commands:**\n```" + strings.Join(list, ", ") + "```\n" +
			"Run **help command** for more details on a command."
	}

	parts := make([]string, 0, len(names))
	for _, name := range names {
		command, ok := LookupCommand(name)
		if !ok {
			parts = append(parts, fmt.Sprintf("No command called %q found.", name))
			continue
		}
		parts = append(parts, fmt.Sprintf("**%s** - %s\n%s\nExamples: %s", command.Name, command.Short, command.Desc, command.Example))
	}
	return strings.Join(parts, "\n\n")
}

// Handle dispatches one chat line ("roll 5d6", "coin", "help roll") and
// returns the reply text. ok is false when the line names no known command.
func (s *Service) Handle(ctx context.Context, line string) (reply string, ok bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false, nil
	}
	command, found := LookupCommand(fields[0])
	if !found {
		return "", false, nil
	}

	args := fields[1:]
	switch command.Name {
	case "roll":
		result, err := s.Roll(ctx, args)
		if err != nil {
			return "", true, err
		}
		return result.Text(), true, nil
	case "coin":
		return s.Flip(ctx), true, nil
	default:
		return HelpText(args...), true, nil
	}
}
