package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloo-solutions/relicguide/internal/domain"
	"github.com/spf13/cobra"
)

// RelicsCmd prints the knowledge base summaries.
func RelicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relics",
		Short: "List relics in the knowledge base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), appOptions{logOutput: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), a.relics.Summaries())
		},
	}
}

type resolveOutput struct {
	Success  bool   `json:"success"`
	File     string `json:"file,omitempty"`
	URL      string `json:"video_url,omitempty"`
	FileSize string `json:"fileSize,omitempty"`
	Message  string `json:"message,omitempty"`
	Tier     string `json:"tier,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ResolveCmd runs one video lookup against the configured library.
func ResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <phrase>",
		Short: "Resolve a phrase to a video asset",
		Long:  "Resolve a phrase to a video asset using the alias table, the file name, then any available video",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			withDelay, _ := cmd.Flags().GetBool("delay")
			a, err := loadApp(cmd.Context(), appOptions{logOutput: cmd.ErrOrStderr(), noDelay: !withDelay})
			if err != nil {
				return err
			}

			ref, err := a.video.Resolve(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				if errors.Is(err, domain.ErrNoLocalVideo) {
					return printJSON(cmd.OutOrStdout(), resolveOutput{Error: domain.ErrNoLocalVideo.Message})
				}
				return err
			}

			return printJSON(cmd.OutOrStdout(), resolveOutput{
				Success:  true,
				File:     ref.FileName,
				URL:      ref.URL,
				FileSize: ref.SizeHint,
				Message:  ref.Message,
				Tier:     string(ref.Tier),
			})
		},
	}

	cmd.Flags().Bool("delay", false, "Apply the configured loading delay")

	return cmd
}

type askOutput struct {
	Answer string `json:"answer"`
	Action string `json:"action"`
	Mode   string `json:"mode"`
}

// AskCmd runs one chat exchange. Unlike /api/generate it refuses relic ids
// missing from the knowledge base instead of answering with the placeholder.
func AskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a relic a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			relicID, _ := cmd.Flags().GetString("relic")
			persona, _ := cmd.Flags().GetString("persona")
			style, _ := cmd.Flags().GetString("style")

			a, err := loadApp(cmd.Context(), appOptions{logOutput: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			if _, err := a.relics.Lookup(relicID); err != nil {
				return fmt.Errorf("%w: %q (see 'relicd relics')", err, relicID)
			}

			reply := a.chat.Generate(cmd.Context(), domain.ChatRequest{
				RelicID:  relicID,
				Question: strings.Join(args, " "),
				Persona:  domain.ParsePersona(persona),
				Style:    domain.ParseStyle(style),
			})

			return printJSON(cmd.OutOrStdout(), askOutput{
				Answer: reply.Answer,
				Action: string(reply.Action),
				Mode:   string(reply.Mode),
			})
		},
	}

	cmd.Flags().StringP("relic", "r", "", "Relic id (see 'relicd relics')")
	cmd.Flags().String("persona", string(domain.DefaultPersona), "Audience: child, scholar or tourist")
	cmd.Flags().String("style", string(domain.DefaultStyle), "Voice: personified or narrator")

	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
