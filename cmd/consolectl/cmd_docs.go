package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kbukum/consoleapi/apiv0"
)

func (c *cli) docsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Read and update documents (v0 API)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			docs, err := c.documents()
			if err != nil {
				return err
			}
			all, err := docs.Get(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(all)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get PATH",
		Short: "Get one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := c.documents()
			if err != nil {
				return err
			}
			doc, err := docs.GetOne(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(doc)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "tag PATH NAME",
		Short: "Get the values of a document tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := c.documents()
			if err != nil {
				return err
			}
			values, err := docs.GetTag(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return c.print(values)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "versions PATH",
		Short: "List the versions of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := c.documents()
			if err != nil {
				return err
			}
			versions, err := docs.GetVersions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(versions)
		},
	})

	cmd.AddCommand(c.docsUpdateCmd(), c.docsShowCmd())
	return cmd
}

func (c *cli) docsUpdateCmd() *cobra.Command {
	var (
		id      string
		date    string
		content string
	)
	cmd := &cobra.Command{
		Use:   "update PATH",
		Short: "Replace the content of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("--id: %w", err)
			}
			when := time.Now()
			if date != "" {
				if when, err = time.Parse(time.RFC3339, date); err != nil {
					return fmt.Errorf("--date: %w", err)
				}
			}

			docs, err := c.documents()
			if err != nil {
				return err
			}
			doc, err := docs.UpdateContent(cmd.Context(), apiv0.NewDocument{Content: content}, args[0], docID, when)
			if err != nil {
				return err
			}
			return c.print(doc)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "id of the document being replaced")
	cmd.Flags().StringVar(&date, "date", "", "revision date, RFC 3339 (default: now)")
	cmd.Flags().StringVar(&content, "content", "", "new content")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

// docView is a document with its version history.
type docView struct {
	Document apiv0.Document  `json:"document"`
	Versions []apiv0.Version `json:"versions"`
}

func (c *cli) docsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show PATH",
		Short: "Get a document together with its versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := c.documents()
			if err != nil {
				return err
			}

			var view docView
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				doc, err := docs.GetOne(ctx, args[0])
				view.Document = doc
				return err
			})
			g.Go(func() error {
				versions, err := docs.GetVersions(ctx, args[0])
				view.Versions = versions
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			return c.print(view)
		},
	}
}
