package main

import (
	"context"
	"fmt"
)

// archive moves an active application to the archive of its profile.
func (cli *commandLine) archive(ctx context.Context, profile, id string) error {
	app, err := cli.examSvc.Get(ctx, profile, id)
	if err != nil {
		return err
	}
	if app.IsArchived() {
		return fmt.Errorf("%q is already archived", app.Name)
	}
	if err = cli.examSvc.Archive(ctx, profile, id); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Archived %q (%s).\n", app.Name, app.ID)
	return nil
}

