// Command coursectl inspects and rearranges course structures through the API.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/yigit/learnhub/internal/editor"
	"github.com/yigit/learnhub/internal/pkg/logger"
	hub "github.com/yigit/learnhub/internal/pkg/websocket"
)

func main() {
	app := &cli.App{
		Name:  "coursectl",
		Usage: "view and reorder learnhub course structures",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Value:   "http://localhost:8080/api/v1",
				Usage:   "API base URL",
				EnvVars: []string{"LEARNHUB_API"},
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "bearer token",
				EnvVars: []string{"LEARNHUB_TOKEN"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "print the structure of a course",
				Flags:  []cli.Flag{courseFlag()},
				Action: show,
			},
			{
				Name:  "move",
				Usage: "move a node under another parent (or to the root) and save",
				Flags: []cli.Flag{
					courseFlag(),
					&cli.StringFlag{Name: "node", Usage: "id of the node to move", Required: true},
					&cli.StringFlag{Name: "parent", Usage: "new parent id; omit to move a module at the root level"},
					&cli.IntFlag{Name: "index", Usage: "zero based position among the new siblings"},
					&cli.BoolFlag{Name: "dry-run", Usage: "print the result without saving"},
				},
				Action: move,
			},
			{
				Name:   "watch",
				Usage:  "stream structure change events of a course",
				Flags:  []cli.Flag{courseFlag()},
				Action: watch,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("coursectl failed")
		os.Exit(1)
	}
}

func courseFlag() cli.Flag {
	return &cli.StringFlag{Name: "course", Aliases: []string{"c"}, Usage: "course id", Required: true}
}

func parseID(c *cli.Context, flag string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.String(flag))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return id, nil
}

func session(c *cli.Context) (*editor.Session, error) {
	courseID, err := parseID(c, "course")
	if err != nil {
		return nil, err
	}
	s := editor.NewSession(editor.NewClient(c.String("api"), c.String("token")), courseID)
	if err := s.Load(c.Context); err != nil {
		return nil, fmt.Errorf("error loading structure: %w", err)
	}
	return s, nil
}

func show(c *cli.Context) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	return editor.Render(c.App.Writer, s.Tree(), nil)
}

func move(c *cli.Context) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	nodeID, err := parseID(c, "node")
	if err != nil {
		return err
	}
	var parentID *uuid.UUID
	if c.IsSet("parent") {
		id, err := parseID(c, "parent")
		if err != nil {
			return err
		}
		parentID = &id
	}

	if err := s.Move(nodeID, parentID, c.Int("index")); err != nil {
		return err
	}
	if !c.Bool("dry-run") {
		if err := s.Save(c.Context); err != nil {
			return fmt.Errorf("error saving structure, nothing was changed: %w", err)
		}
	}
	return editor.Render(c.App.Writer, s.Tree(), nil)
}

func watch(c *cli.Context) error {
	courseID, err := parseID(c, "course")
	if err != nil {
		return err
	}
	wsURL, err := editor.WatchURL(c.String("api"), courseID)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(c.App.Writer, "watching %s (ctrl-c to stop)\n", courseID)
	return editor.Watch(ctx, wsURL, c.String("token"), func(ev hub.Event) {
		fmt.Fprintf(c.App.Writer, "%s %s %s\n", ev.Timestamp.Format("15:04:05"), ev.Type, ev.Reason)
	})
}
