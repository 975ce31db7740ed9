package main

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dbajet/llmrelay/llmclient"
)

var askCmd = &cobra.Command{
	Use:   "ask <prompt>",
	Short: "Send a one-shot conversation and print the reply",
	Long:  "Build a conversation from the flags and the prompt argument, send it with a bounded retry budget, and print the generated text.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().String("system", "", "System prompt")
	askCmd.Flags().StringArray("attach", nil, "Attachment URL (repeatable; kind inferred from extension)")
	askCmd.Flags().Int("attempts", 3, "Maximum request attempts")

	rootCmd.AddCommand(askCmd)
}

// conversationClient is what ask needs from a vendor client: the
// request contract plus the turn and file mutation surface.
type conversationClient interface {
	llmclient.Client
	SetSystemPrompt(text []string)
	SetUserPrompt(text []string)
	AddFile(ref llmclient.FileReference)
}

func runAsk(cmd *cobra.Command, args []string) error {
	vendor := viper.GetString("vendor")
	model := viper.GetString("model")
	verbose := viper.GetBool("verbose")
	system, _ := cmd.Flags().GetString("system")
	attachments, _ := cmd.Flags().GetStringArray("attach")
	attempts, _ := cmd.Flags().GetInt("attempts")

	client, err := newClient(vendor, model)
	if err != nil {
		return err
	}

	if system != "" {
		client.SetSystemPrompt([]string{system})
	}
	client.SetUserPrompt(strings.Split(args[0], "\n"))
	for _, url := range attachments {
		client.AddFile(llmclient.FileReference{URL: url, Kind: fileKindFor(url)})
	}

	requestID := uuid.New().String()[:8]
	if verbose {
		fmt.Fprintf(os.Stderr, "[ask %s] vendor=%s model=%s attempts=%d attachments=%d\n",
			requestID, vendor, model, attempts, len(attachments))
	}

	results := llmclient.AttemptRequests(cmd.Context(), client, attempts)
	for i, result := range results {
		if verbose || result.Code != http.StatusOK {
			fmt.Fprintf(os.Stderr, "[ask %s] attempt %d: status %d\n", requestID, i+1, result.Code)
		}
	}

	final := results[len(results)-1]
	if final.Code != http.StatusOK {
		return fmt.Errorf("request failed with status %d: %s", final.Code, final.Text)
	}

	fmt.Fprintln(os.Stdout, final.Text)
	fmt.Fprintf(os.Stderr, "[ask %s] tokens: prompt=%d generated=%d\n",
		requestID, final.Tokens.Prompt, final.Tokens.Generated)
	return nil
}

// newClient builds the vendor client with the conventional env var for
// its API key.
func newClient(vendor, model string) (conversationClient, error) {
	switch vendor {
	case "anthropic":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required")
		}
		return llmclient.NewAnthropicClient(llmclient.Settings{APIKey: key, Model: model}), nil
	case "google":
		key := os.Getenv("GOOGLE_API_KEY")
		if key == "" {
			key = os.Getenv("GEMINI_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY or GEMINI_API_KEY is required")
		}
		return llmclient.NewGoogleClient(llmclient.Settings{APIKey: key, Model: model}), nil
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required")
		}
		return llmclient.NewOpenAIClient(llmclient.Settings{APIKey: key, Model: model}), nil
	}
	return nil, fmt.Errorf("unknown vendor %q (expected anthropic, google, or openai)", vendor)
}

// fileKindFor infers the attachment kind from the URL extension.
func fileKindFor(url string) llmclient.FileKind {
	switch strings.ToLower(path.Ext(url)) {
	case ".pdf":
		return llmclient.FilePDF
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return llmclient.FileImage
	case ".txt", ".md", ".csv":
		return llmclient.FileText
	}
	return llmclient.FileOther
}
