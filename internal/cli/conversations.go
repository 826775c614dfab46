package cli

import (
	"github.com/spf13/cobra"

	"ghl/internal/services"
)

var conversationColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "CONTACT", Key: "fullName"},
	{Header: "LAST MESSAGE", Key: "lastMessageBody"},
	{Header: "UNREAD", Key: "unreadCount"},
}

var messageColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "TYPE", Key: "messageType"},
	{Header: "DIRECTION", Key: "direction"},
	{Header: "BODY", Key: "body"},
	{Header: "DATE", Key: "dateAdded"},
}

// newConversationsCmd creates the conversations command group.
func (cli *CLI) newConversationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "conversations",
		Aliases: []string{"convos", "conversation"},
		Short:   "Browse conversations and messages",
	}

	var (
		searchLimit  int
		messageLimit int
	)

	searchCmd := &cobra.Command{
		Use:     "search [query]",
		Aliases: []string{"list", "ls"},
		Short:   "Search conversations",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cli.newOutput()
			if err != nil {
				return err
			}
			client, err := cli.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			query := ""
			if len(args) > 0 {
				query = args[0]
			}

			convos, err := services.SearchConversations(cmd.Context(), client, query, searchLimit)
			if err != nil {
				return err
			}
			return output.WriteList(conversationColumns, convos)
		},
	}
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum conversations to return")

	messagesCmd := &cobra.Command{
		Use:   "messages <conversation-id>",
		Short: "List messages in a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cli.newOutput()
			if err != nil {
				return err
			}
			client, err := cli.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			messages, err := services.ListMessages(cmd.Context(), client, args[0], messageLimit)
			if err != nil {
				return err
			}
			return output.WriteList(messageColumns, messages)
		},
	}
	messagesCmd.Flags().IntVar(&messageLimit, "limit", 20, "Maximum messages to return")

	cmd.AddCommand(
		searchCmd,
		&cobra.Command{
			Use:   "get <conversation-id>",
			Short: "Show a single conversation",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				output, err := cli.newOutput()
				if err != nil {
					return err
				}
				client, err := cli.newClient()
				if err != nil {
					return err
				}
				defer client.Close()

				convo, err := services.GetConversation(cmd.Context(), client, args[0])
				if err != nil {
					return err
				}
				return output.WriteObject(convo)
			},
		},
		messagesCmd,
	)

	return cmd
}
