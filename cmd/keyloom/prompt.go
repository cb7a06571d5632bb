package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// interactive reports whether prompts can be shown.
func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// promptValues asks for one value per document, prefilled with initial.
func promptValues(title string, names []string, initial map[string]string) (map[string]string, error) {
	vals := make([]string, len(names))
	fields := make([]huh.Field, 0, len(names))
	for i, name := range names {
		vals[i] = initial[name]
		fields = append(fields, huh.NewInput().Title(name).Value(&vals[i]))
	}

	form := huh.NewForm(huh.NewGroup(fields...).Title(title))
	if err := form.Run(); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(names))
	for i, name := range names {
		out[name] = vals[i]
	}
	return out, nil
}

func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

// parseValues turns repeated "document=value" flags into a map.
func parseValues(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid value %q: expected document=value", pair)
		}
		out[name] = value
	}
	return out, nil
}
