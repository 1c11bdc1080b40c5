package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Action is one button of a confirmation dialog.
type Action struct {
	Label       string
	Destructive bool
}

// Confirmer asks the user to pick one of actions. actions[0] is the
// cancel choice and is what an unanswered dialog resolves to.
type Confirmer interface {
	Confirm(title, message string, actions []Action) (Action, error)
}

var (
	Cancel = Action{Label: "Cancel"}
	Delete = Action{Label: "Delete", Destructive: true}
)

// DeleteItem asks the standard delete question and reports whether the
// user chose Delete.
func DeleteItem(c Confirmer) (bool, error) {
	got, err := c.Confirm("Delete Item", "Are you sure you want to delete this item?", []Action{Cancel, Delete})
	if err != nil {
		return false, err
	}
	return got == Delete, nil
}

// Prompt asks on a terminal: the answer is matched against the labels,
// case-insensitively, by full label or first letter.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

func (p Prompt) Confirm(title, message string, actions []Action) (Action, error) {
	if len(actions) == 0 {
		return Action{}, errors.New("confirm: no actions")
	}
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = a.Label
	}
	fmt.Fprintf(p.Out, "%s\n%s [%s]: ", title, message, strings.Join(labels, "/"))

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return actions[0], fmt.Errorf("read answer: %w", err)
	}
	return match(strings.TrimSpace(line), actions), nil
}

func match(answer string, actions []Action) Action {
	if answer == "" {
		return actions[0]
	}
	for _, a := range actions {
		if strings.EqualFold(answer, a.Label) {
			return a
		}
	}
	// "y" reads as the first destructive choice, "n" as cancel.
	switch strings.ToLower(answer) {
	case "y", "yes":
		for _, a := range actions {
			if a.Destructive {
				return a
			}
		}
	case "n", "no":
		return actions[0]
	}
	for _, a := range actions {
		if a.Label != "" && strings.EqualFold(answer, a.Label[:1]) {
			return a
		}
	}
	return actions[0]
}

// Always answers every dialog with the last action, without asking.
// Backs the --yes flag.
type Always struct{}

func (Always) Confirm(_, _ string, actions []Action) (Action, error) {
	if len(actions) == 0 {
		return Action{}, errors.New("confirm: no actions")
	}
	return actions[len(actions)-1], nil
}
