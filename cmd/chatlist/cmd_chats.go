package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"chatlist/cmd/chatlist/tui"
	"chatlist/cmd/chatlist/ui"
	"chatlist/internal/logging"
	"chatlist/internal/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// listCmd prints the roster
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List chats in the collection",
	Example: `  chatlist list
  chatlist list --search ali`,
	Args: cobra.NoArgs,
	RunE: listChats,
}

// createCmd creates a chat
var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a chat and print the roster",
	Long: `Creates a chat on the server and appends the server's record to the roster.
A blank name is ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: createChat,
}

// deleteCmd deletes a chat
var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a chat and print the roster",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteChat,
}

// renameCmd renames a chat
var renameCmd = &cobra.Command{
	Use:   "rename [id] [name]",
	Short: "Rename a chat and print the roster",
	Args:  cobra.ExactArgs(2),
	RunE:  renameChat,
}

// signalContext cancels on Ctrl+C so a hung request can be abandoned.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// loadedApp builds the app and performs the initial refresh.
func loadedApp(ctx context.Context) (*app, error) {
	a, err := newApp(false)
	if err != nil {
		return nil, err
	}
	if err := a.roster.Refresh(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load chats: %w", err)
	}
	return a, nil
}

func listChats(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	a, err := loadedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	search, _ := cmd.Flags().GetString("search")
	a.roster.SetSearchText(search)
	printRoster(cmd.OutOrStdout(), a.roster.FilteredView())
	return nil
}

func createChat(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	a, err := loadedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	a.roster.SetNewChatName(args[0])
	if err := a.roster.Create(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	printRoster(cmd.OutOrStdout(), a.roster.FilteredView())
	return nil
}

func deleteChat(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	a, err := loadedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.roster.Delete(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete chat %s: %w", args[0], err)
	}
	printRoster(cmd.OutOrStdout(), a.roster.FilteredView())
	return nil
}

func renameChat(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	a, err := loadedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	id, name := args[0], args[1]
	a.roster.BeginRename(id)
	if err := a.roster.CommitRename(ctx, id, name); err != nil {
		return fmt.Errorf("failed to rename chat %s: %w", id, err)
	}
	printRoster(cmd.OutOrStdout(), a.roster.FilteredView())
	return nil
}

func printRoster(w io.Writer, chats []types.Chat) {
	if len(chats) == 0 {
		fmt.Fprintln(w, "No chats.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tAVATAR")
	for _, c := range chats {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Name, c.AvatarOr("-"))
	}
	tw.Flush()
}

// runInteractive starts the terminal UI.
func runInteractive(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	styles := ui.NewStyles(ui.ThemeFor(a.cfg.UI.Theme))
	model := tui.New(tui.Options{
		Controller:    a.roster,
		Styles:        styles,
		DefaultAvatar: a.cfg.UI.DefaultAvatar,
		LocalUserID:   a.cfg.UI.LocalUserID,
	})

	logging.UI("starting interactive session")
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}
	return nil
}
