package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/five82/hackerstories/internal/app"
	"github.com/five82/hackerstories/internal/hnsearch"
)

type searchResult struct {
	Query   string        `json:"query" yaml:"query"`
	Count   int           `json:"count" yaml:"count"`
	Stories []storyRecord `json:"stories" yaml:"stories"`
}

type storyRecord struct {
	ObjectID    string `json:"objectID" yaml:"objectID"`
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Author      string `json:"author" yaml:"author"`
	Points      int    `json:"points" yaml:"points"`
	NumComments int    `json:"num_comments" yaml:"num_comments"`
	CreatedAt   string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

func newSearchCmd(v *viper.Viper) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run one search and print the stories",
		Long:  "Run one search without the TUI. Without a query the remembered search term is used; the query used is remembered.",
		RunE: func(cmd *cobra.Command, args []string) error {
			render, err := renderer(output)
			if err != nil {
				return err
			}

			opts := appOptions(v)
			opts.LogOutput = cmd.ErrOrStderr()
			sess, err := app.OpenSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			ctrl := sess.Controller
			if len(args) > 0 {
				ctrl.SetText(strings.Join(args, " "))
			}
			if err := ctrl.Fetch(cmd.Context()); err != nil {
				return fmt.Errorf("search %q: %w", ctrl.Text(), err)
			}

			items := ctrl.Stories().Items
			res := searchResult{Query: ctrl.Text(), Count: len(items), Stories: make([]storyRecord, 0, len(items))}
			for _, s := range items {
				res.Stories = append(res.Stories, toRecord(s))
			}
			return render(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	return cmd
}

func toRecord(s hnsearch.Story) storyRecord {
	return storyRecord{
		ObjectID:    s.ObjectID,
		Title:       s.Title,
		URL:         s.URL,
		Author:      s.Author,
		Points:      s.Points,
		NumComments: s.NumComments,
		CreatedAt:   s.CreatedAt,
	}
}

type renderFunc func(io.Writer, searchResult) error

func renderer(format string) (renderFunc, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		return renderTable, nil
	case "json":
		return renderJSON, nil
	case "yaml", "yml":
		return renderYAML, nil
	default:
		return nil, fmt.Errorf("unknown output format %q: want table, json or yaml", format)
	}
}

func renderJSON(w io.Writer, res searchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func renderYAML(w io.Writer, res searchResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return err
	}
	return enc.Close()
}

func renderTable(w io.Writer, res searchResult) error {
	if res.Count == 0 {
		_, err := fmt.Fprintf(w, "No stories for %q\n", res.Query)
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "AUTHOR", "POINTS", "COMMENTS")
	for _, s := range res.Stories {
		t.Row(s.ObjectID, s.Title, s.Author, fmt.Sprint(s.Points), fmt.Sprint(s.NumComments))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
