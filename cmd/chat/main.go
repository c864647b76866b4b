// Command chat runs an interactive outreach conversation in the terminal.
// Callers with a directory-listed phone number are greeted as returning
// customers; unknown numbers go through the new-lead flow.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pharmesol/outreach-ai/internal/config"
	"github.com/pharmesol/outreach-ai/internal/conversation"
	"github.com/pharmesol/outreach-ai/internal/directory"
	"github.com/pharmesol/outreach-ai/internal/followup"
	"github.com/pharmesol/outreach-ai/internal/prompts"
	"github.com/pharmesol/outreach-ai/pkg/logging"
)

var exitCommands = map[string]bool{
	"quit":    true,
	"exit":    true,
	"bye":     true,
	"goodbye": true,
}

var (
	botStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	userStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	actionText = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

var phoneFlag string

var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive pharmacy outreach chat session",
	Long: `Starts a chat session with the pharmacy outreach assistant.
The assistant recognizes your pharmacy if the phone number is in the
directory, or treats you as a new lead if it's unknown.`,
	RunE: runChat,
}

func init() {
	rootCmd.Flags().StringVarP(&phoneFlag, "phone", "p", "+1-555-DEMO-CHAT", "your pharmacy's phone number")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := logging.NewText(os.Stderr, "warn")

	store, err := prompts.NewStore(cfg.PromptsDir)
	if err != nil {
		return err
	}
	composer := conversation.NewComposer(store, cfg.CompanyName)

	ctx := context.Background()

	dirClient := directory.NewClient(cfg.DirectoryURL,
		directory.WithLogger(logger),
		directory.WithTimeout(cfg.DefaultTimeout),
	)
	records, err := dirClient.FetchAll(ctx)
	if err != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("Failed to load pharmacy directory: %v", err)))
		records = nil
	}

	pharmacy, _ := directory.FindByPhone(records, phoneFlag)
	state := conversation.NewState(phoneFlag, pharmacy)

	fmt.Println(panelStyle.Render(fmt.Sprintf("%s Outreach Assistant\nCalling as: %s", cfg.CompanyName, phoneFlag)))
	if pharmacy != nil {
		fmt.Println(panelStyle.Render(directory.Summary(pharmacy)))
	}

	var service *conversation.Service
	var fallback *conversation.FallbackResponder
	if cfg.OpenAIAPIKey == "" {
		fmt.Println(warnStyle.Render("No OpenAI API key found. Using fallback responses."))
		fallback = conversation.NewFallbackResponder(cfg.CompanyName)
	} else {
		llm, err := conversation.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			return err
		}
		extractor := conversation.NewExtractor(llm, composer, logger)
		service = conversation.NewService(llm, composer, extractor, cfg.CompanyPhone, logger, nil)
	}

	greeting, err := composer.Greeting(state)
	if err != nil {
		return err
	}
	state.AppendBot(greeting)
	printBot(greeting)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("\n%s ", userStyle.Render("You:"))
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if exitCommands[strings.ToLower(input)] {
			printBot("Thank you for chatting with us! Have a great day!")
			break
		}

		var reply string
		if service != nil {
			reply, err = service.ProcessMessage(ctx, state, input)
			if err != nil {
				return err
			}
		} else {
			reply = fallback.Respond(state, input)
		}
		printBot(reply)
	}

	fmt.Println("\nExecuting follow-up actions...")
	dispatcher := followup.NewDispatcher(emailSender(cfg, logger), store, followup.CompanyIdentity{
		Name:  cfg.CompanyName,
		Email: cfg.CompanyEmail,
		Phone: cfg.CompanyPhone,
	}, logger, nil)

	executed, err := dispatcher.Run(ctx, state)
	if err != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("Follow-up actions failed: %v", err)))
	}
	for _, action := range executed {
		fmt.Println(actionText.Render("  • " + action))
	}
	if len(executed) == 0 {
		fmt.Println(actionText.Render("  (no follow-up actions for this session)"))
	}

	fmt.Println(panelStyle.Render(fmt.Sprintf("Session complete. Thanks for chatting, %s!\nMessages exchanged: %d", state.CallerName(), len(state.Messages))))
	return nil
}

func printBot(text string) {
	fmt.Printf("\n%s %s\n", botStyle.Render("Bot:"), text)
}

func emailSender(cfg *config.Config, logger *logging.Logger) followup.EmailSender {
	if s := followup.NewSendGridSender(followup.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.FromEmail,
	}, logger); s != nil {
		return s
	}
	return followup.NewStubEmailSender(logger)
}
