package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/starford/quicknote/internal"
	"github.com/starford/quicknote/internal/noteservice"
	"github.com/starford/quicknote/internal/share"
)

var stdout io.Writer = os.Stdout

var errUsage = errors.New("wrong number of arguments")

var newSink = func() share.Sink { return share.NewClipboard() }

func withService(ctx context.Context, cmd *cli.Command, fn func(*noteservice.Service) error) error {
	opts, err := options(cmd)
	if err != nil {
		return err
	}
	svc, closeStore, err := internal.OpenService(ctx, opts...)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(svc)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", s)
	}
	return id, nil
}

func listNotes(ctx context.Context, cmd *cli.Command) error {
	return withService(ctx, cmd, func(svc *noteservice.Service) error {
		return renderList(stdout, svc.Screen(), int(cmd.Int("width")))
	})
}

func addNote(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return errUsage
	}
	text := strings.Join(cmd.Args().Slice(), " ")
	return withService(ctx, cmd, func(svc *noteservice.Service) error {
		n, err := svc.CreateNote(ctx, text)
		if err != nil {
			return err
		}
		if n == nil {
			fmt.Fprintln(stdout, "nothing saved")
			return nil
		}
		fmt.Fprintf(stdout, "created %d\n", n.ID)
		return nil
	})
}

func editNote(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return errUsage
	}
	id, err := parseID(cmd.Args().First())
	if err != nil {
		return err
	}
	text := strings.Join(cmd.Args().Tail(), " ")
	return withService(ctx, cmd, func(svc *noteservice.Service) error {
		_, saved, err := svc.UpdateNote(ctx, id, text, "")
		if err != nil {
			return err
		}
		if saved {
			fmt.Fprintf(stdout, "updated %d\n", id)
		}
		return nil
	})
}

func removeNotes(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return errUsage
	}
	ids := make([]int64, 0, cmd.Args().Len())
	for _, a := range cmd.Args().Slice() {
		id, err := parseID(a)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	return withService(ctx, cmd, func(svc *noteservice.Service) error {
		if err := svc.DeleteNotes(ctx, ids...); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%d Note(s) Delete successfully !\n", len(ids))
		return nil
	})
}

func shareNote(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errUsage
	}
	id, err := parseID(cmd.Args().First())
	if err != nil {
		return err
	}
	return withService(ctx, cmd, func(svc *noteservice.Service) error {
		text, err := svc.ShareNote(ctx, id)
		if err != nil {
			return err
		}
		if !cmd.Bool("copy") {
			fmt.Fprintln(stdout, text)
			return nil
		}
		sink := newSink()
		if err := sink.Share(text); err != nil {
			return err
		}
		if cb, ok := sink.(*share.Clipboard); ok {
			fmt.Fprintf(stdout, "copied via %s\n", cb.LastMethod())
		} else {
			fmt.Fprintln(stdout, "copied")
		}
		return nil
	})
}
