// Package llmclient provides thin HTTP clients for the Anthropic,
// Google, and OpenAI text generation APIs behind a single
// vendor-neutral surface.
//
// A conversation is built as an ordered list of role-tagged turns,
// optionally with queued file attachments, then sent with a bounded
// retry loop. Every vendor reply, including failures, is normalized
// into one UnifiedResponse carrying the HTTP status, the generated (or
// error) text, and the token counts the vendor reported.
//
//	settings := llmclient.Settings{APIKey: os.Getenv("ANTHROPIC_API_KEY"), Model: "claude-sonnet-4-5"}
//	client := llmclient.NewAnthropicClient(settings)
//	client.SetSystemPrompt([]string{"You are terse."})
//	client.SetUserPrompt([]string{"Summarize this file."})
//	client.AddFile(llmclient.FileReference{URL: "https://example.com/doc.pdf", Kind: llmclient.FilePDF})
//
//	results := llmclient.AttemptRequests(ctx, client, 3)
//	final := results[len(results)-1]
//	fmt.Println(final.Text)
//
// Clients are synchronous and single-threaded: payload building
// mutates the file queue in place, so a client must not be shared
// across goroutines.
package llmclient
