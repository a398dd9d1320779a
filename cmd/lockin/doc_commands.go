package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lockin/internal/client"
)

func newDocCommand(ctx *commandContext) *cobra.Command {
	docCmd := &cobra.Command{
		Use:   "doc",
		Short: "Manage uploaded documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listDocuments(ctx, cmd)
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Upload a document for extraction and analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(cl *client.Client) error {
				resp, err := cl.UploadDocument(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, resp)
				}
				doc := resp.Document
				fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (id %d): %d words, %d bytes\n",
					doc.Filename, doc.ID, doc.WordCount, doc.FileSize)
				return nil
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List uploaded documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listDocuments(ctx, cmd)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one document with its analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid document id %q", args[0])
			}
			return ctx.withClient(func(cl *client.Client) error {
				doc, err := cl.Document(cmd.Context(), id)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, doc)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Filename:  %s\n", doc.Filename)
				fmt.Fprintf(out, "Type:      %s\n", doc.FileType)
				fmt.Fprintf(out, "Uploaded:  %s\n", doc.UploadDate)
				fmt.Fprintf(out, "Size:      %d bytes\n", doc.FileSize)
				fmt.Fprintf(out, "Words:     %d\n", doc.WordCount)
				if len(doc.Analysis) > 0 {
					fmt.Fprintf(out, "Analysis:  %s\n", doc.Analysis)
				} else {
					fmt.Fprintln(out, "Analysis:  (pending)")
				}
				return nil
			})
		},
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze <id>",
		Short: "Re-run AI analysis on a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid document id %q", args[0])
			}
			return ctx.withClient(func(cl *client.Client) error {
				resp, err := cl.AnalyzeDocument(cmd.Context(), id)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, resp)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Provider: %s\n", resp.Provider)
				fmt.Fprintf(out, "Summary:  %s\n", resp.Result.Summary)
				for i, topic := range resp.Result.KeyTopics {
					weight := 0
					if i < len(resp.Result.Weightage) {
						weight = resp.Result.Weightage[i]
					}
					fmt.Fprintf(out, "  - %s (%d%%)\n", topic, weight)
				}
				return nil
			})
		},
	}

	docCmd.AddCommand(addCmd, listCmd, showCmd, analyzeCmd)
	return docCmd
}

func listDocuments(ctx *commandContext, cmd *cobra.Command) error {
	return ctx.withClient(func(cl *client.Client) error {
		docs, err := cl.Documents(cmd.Context())
		if err != nil {
			return err
		}
		if ctx.jsonOutput() {
			return writeJSON(cmd, docs)
		}
		if len(docs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No documents uploaded.")
			return nil
		}
		rows := make([][]string, 0, len(docs))
		for _, doc := range docs {
			analyzed := "pending"
			if len(doc.Analysis) > 0 {
				analyzed = "yes"
			}
			rows = append(rows, []string{
				strconv.FormatInt(doc.ID, 10),
				doc.Filename,
				strconv.Itoa(doc.WordCount),
				analyzed,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"ID", "Filename", "Words", "Analyzed"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
		))
		return nil
	})
}
