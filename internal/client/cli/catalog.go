package cli

import (
	"context"
	"fmt"
)

func (a *App) Groups(ctx context.Context) error {
	groups, err := a.catalog.Groups(ctx)
	if err != nil {
		return err
	}
	for _, g := range groups {
		fmt.Fprintln(a.out, g)
	}
	return nil
}

func (a *App) Exercises(ctx context.Context, group string) error {
	list, err := a.catalog.ExercisesByGroup(ctx, group)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No exercises in this group")
		return nil
	}
	for _, e := range list {
		fmt.Fprintf(a.out, "%s\t%s\t%d x %d\n", e.ID, e.Name, e.Series, e.Repetitions)
	}
	return nil
}

func (a *App) Exercise(ctx context.Context, id string) error {
	e, err := a.catalog.Exercise(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\nseries: %d\nrepetitions: %d\n", e.Name, e.Group, e.Series, e.Repetitions)
	if e.Demo != "" {
		fmt.Fprintf(a.out, "demo: %s\n", e.Demo)
	}
	return nil
}

// Done registers exercise id as completed.
func (a *App) Done(ctx context.Context, id string) error {
	return a.catalog.RegisterHistory(ctx, id)
}

func (a *App) History(ctx context.Context) error {
	days, err := a.catalog.History(ctx)
	if err != nil {
		return err
	}
	if len(days) == 0 {
		fmt.Fprintln(a.out, "No exercises registered yet")
		return nil
	}
	for _, d := range days {
		fmt.Fprintln(a.out, d.Title)
		for _, r := range d.Data {
			fmt.Fprintf(a.out, "  %s\t%s\t%s\n", r.Hour, r.Group, r.Name)
		}
	}
	return nil
}
