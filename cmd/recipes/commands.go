// ABOUTME: CLI commands for searching, showing and listing reference data
// ABOUTME: Drives the URL state controller and a browse session like a list screen

package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"recipe-finder-api/core/browse"
	"recipe-finder-api/core/urlstate"
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "List meals matching a search text or category and area filters",
		ArgsUsage: "[text]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "category",
				Usage: "Filter by category. Can be used multiple times",
			},
			&cli.StringSliceFlag{
				Name:  "area",
				Usage: "Filter by area. Can be used multiple times",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Page to show",
			},
			&cli.StringFlag{
				Name:  "from",
				Usage: "Start from a list query string, e.g. categories=Beef&page=2",
			},
			&cli.IntFlag{
				Name:  "retries",
				Usage: "How many times to retry a failed list",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			env, err := openEnvironment(c)
			if err != nil {
				return err
			}
			req := searchRequest{
				Search:     strings.Join(c.Args().Slice(), " "),
				SetSearch:  c.Args().Present(),
				Categories: c.StringSlice("category"),
				Areas:      c.StringSlice("area"),
				Page:       int(c.Int("page")),
				Retries:    int(c.Int("retries")),
			}
			return runSearch(ctx, env, c.String("from"), req)
		},
	}
}

// ShowCommand creates the show command
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show one meal's recipe",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "from",
				Usage: "List query string the meal was opened from, used for the back link",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if !c.Args().Present() {
				return errors.New("missing meal id")
			}
			env, err := openEnvironment(c)
			if err != nil {
				return err
			}
			return runShow(ctx, env, c.Args().First(), c.String("from"))
		},
	}
}

// CategoriesCommand creates the categories command
func CategoriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List meal categories",
		Action: func(ctx context.Context, c *cli.Command) error {
			env, err := openEnvironment(c)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(ctx, env.callTimeout())
			defer cancel()

			result := env.source.Categories(ctx)
			if !result.OK {
				return result.Err
			}
			fmt.Println(renderCategories(result.Data))
			return nil
		},
	}
}

// AreasCommand creates the areas command
func AreasCommand() *cli.Command {
	return &cli.Command{
		Name:  "areas",
		Usage: "List meal areas",
		Action: func(ctx context.Context, c *cli.Command) error {
			env, err := openEnvironment(c)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(ctx, env.callTimeout())
			defer cancel()

			result := env.source.Areas(ctx)
			if !result.OK {
				return result.Err
			}
			fmt.Println(renderAreas(result.Data))
			return nil
		},
	}
}

// searchRequest holds the list transitions asked for on the command line
type searchRequest struct {
	Search     string
	SetSearch  bool
	Categories []string
	Areas      []string
	Page       int
	Retries    int
}

func runSearch(ctx context.Context, env *environment, from string, req searchRequest) error {
	nav := urlstate.NewMemoryNavigator(startLocation(from))
	ctl := urlstate.NewController(nav,
		urlstate.WithDebounce(env.cfg.SearchDebounce()),
		urlstate.WithLogger(env.logger),
	)
	defer ctl.Close()

	if err := applyRequest(ctx, ctl, nav, req); err != nil {
		return err
	}

	session := browse.NewSession(env.source, env.sessionOptions(env.withFlags(ctx)))
	defer session.Close()

	session.Apply(ctl.State())
	view, err := settle(ctx, session, env.callTimeout())
	if err != nil {
		return err
	}
	for attempt := 0; attempt < req.Retries && view.Error != nil; attempt++ {
		env.logger.Info("Retrying meal list", map[string]interface{}{
			"attempt": attempt + 1,
			"error":   view.Error.Message,
		})
		session.Retry()
		if view, err = settle(ctx, session, env.callTimeout()); err != nil {
			return err
		}
	}

	fmt.Println(renderList(view, nav.Location()))
	return nil
}

func runShow(ctx context.Context, env *environment, id, from string) error {
	nav := urlstate.NewMemoryNavigator(detailLocation(id, from))
	ctl := urlstate.NewController(nav, urlstate.WithLogger(env.logger))
	defer ctl.Close()

	ctx, cancel := context.WithTimeout(ctx, env.callTimeout())
	defer cancel()

	result := env.source.Meal(ctx, id)
	if !result.OK {
		return result.Err
	}
	fmt.Println(renderDetail(result.Data, ctl.BackLink()))
	return nil
}

// applyRequest drives the controller through the requested transitions.
// Search text goes first since it resets filters.
func applyRequest(ctx context.Context, ctl *urlstate.Controller, nav *urlstate.MemoryNavigator, req searchRequest) error {
	if req.SetSearch {
		changed := make(chan struct{}, 1)
		stop := nav.OnChange(func(string) {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
		defer stop()

		ctl.SetSearch(req.Search)
		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for _, name := range req.Categories {
		if !slices.Contains(ctl.State().Categories, name) {
			ctl.ToggleCategory(name)
		}
	}
	for _, name := range req.Areas {
		if !slices.Contains(ctl.State().Areas, name) {
			ctl.ToggleArea(name)
		}
	}
	if req.Page > 0 {
		ctl.SetPage(req.Page)
	}
	return nil
}

// settle waits until the session is idle and returns its view
func settle(ctx context.Context, session *browse.Session, timeout time.Duration) (browse.View, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := session.Wait(ctx); err != nil {
		return browse.View{}, fmt.Errorf("waiting for meals: %w", err)
	}
	return session.View(), nil
}

// startLocation turns a query string into a list location
func startLocation(from string) string {
	return "/?" + strings.TrimPrefix(strings.TrimSpace(from), "?")
}

// detailLocation is the location of a meal opened from the list at from
func detailLocation(id, from string) string {
	from = strings.TrimPrefix(strings.TrimSpace(from), "?")
	if from == "" {
		return "/meals/" + id
	}
	return "/meals/" + id + "?" + from
}
