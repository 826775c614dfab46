package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ghl/internal/services"
)

var contactColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "NAME", Key: "contactName"},
	{Header: "EMAIL", Key: "email"},
	{Header: "PHONE", Key: "phone"},
	{Header: "TAGS", Key: "tags"},
}

var noteColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "BODY", Key: "body"},
	{Header: "CREATED", Key: "dateAdded"},
}

var contactTaskColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "TITLE", Key: "title"},
	{Header: "DUE", Key: "dueDate"},
	{Header: "COMPLETED", Key: "completed"},
}

// newContactsCmd creates the contacts command group.
func (cli *CLI) newContactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"contact"},
		Short:   "Manage contacts",
		Long: `List, search, create, update and delete contacts in the active location.

Examples:
  # List contacts
  ghl contacts list --limit=50

  # Search by free text
  ghl contacts search "jane"

  # Filter by tags (AND semantics)
  ghl contacts filter --tag=lead --tag=newsletter

  # Create a contact
  ghl contacts create --email=jane@example.com --first-name=Jane`,
	}

	cmd.AddCommand(
		cli.newContactsListCmd(),
		cli.newContactsGetCmd(),
		cli.newContactsSearchCmd(),
		cli.newContactsFilterCmd(),
		cli.newContactsCreateCmd(),
		cli.newContactsUpdateCmd(),
		cli.newContactsDeleteCmd(),
		cli.newContactsTagCmd(),
		cli.newContactsUntagCmd(),
		cli.newContactsNotesCmd(),
		cli.newContactsTasksCmd(),
		cli.newContactsWorkflowCmd(),
	)

	return cmd
}

func (cli *CLI) newContactsListCmd() *cobra.Command {
	var (
		limit int
		query string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List contacts",
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

			contacts, err := services.ListContacts(cmd.Context(), client, limit, query)
			if err != nil {
				return err
			}
			return output.WriteList(contactColumns, contacts)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum contacts to return")
	cmd.Flags().StringVar(&query, "query", "", "Free-text query")

	return cmd
}

func (cli *CLI) newContactsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <contact-id>",
		Short: "Show a single contact",
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

			contact, err := services.GetContact(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}
			return output.WriteObject(contact)
		},
	}
}

func (cli *CLI) newContactsSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search contacts by free text",
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

			contacts, err := services.SearchContacts(cmd.Context(), client, args[0], limit)
			if err != nil {
				return err
			}
			return output.WriteList(contactColumns, contacts)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum contacts to return")

	return cmd
}

func (cli *CLI) newContactsFilterCmd() *cobra.Command {
	var (
		tags       []string
		assignedTo string
		query      string
		page       int
		pageLimit  int
		save       string
		load       string
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter contacts by tags and assignee",
		Long: `Filter contacts with structured conditions. Multiple --tag flags are
combined with AND semantics.

A filter can be saved for later replay:
  ghl contacts filter --tag=lead --save="hot leads"
  ghl contacts filter --load=<search-id>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cli.newOutput()
			if err != nil {
				return err
			}
			location, err := cli.requireLocation()
			if err != nil {
				return err
			}
			client, err := cli.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			if load != "" {
				search, ok := cli.Searches.Get(load)
				if !ok {
					return fmt.Errorf("saved search %q not found", load)
				}
				tags = search.Tags
				assignedTo = search.AssignedTo
				query = search.Query
			}

			contacts, err := services.FilterContacts(cmd.Context(), client, location, services.ContactFilter{
				Page:       page,
				PageLimit:  pageLimit,
				Query:      query,
				Tags:       tags,
				AssignedTo: assignedTo,
			})
			if err != nil {
				return err
			}

			if save != "" {
				saved, err := cli.Searches.Save(searchFromFilter(save, tags, assignedTo, query))
				if err != nil {
					return err
				}
				PrintSuccess("saved search %q (%s)", saved.Name, saved.ID)
			}

			return output.WriteList(contactColumns, contacts)
		},
	}

	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag to require (repeatable, AND)")
	cmd.Flags().StringVar(&assignedTo, "assigned-to", "", "Assignee user ID")
	cmd.Flags().StringVar(&query, "query", "", "Free-text query")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageLimit, "page-limit", 20, "Contacts per page")
	cmd.Flags().StringVar(&save, "save", "", "Save this filter under a name")
	cmd.Flags().StringVar(&load, "load", "", "Replay a saved search by ID")

	return cmd
}

func (cli *CLI) newContactsCreateCmd() *cobra.Command {
	var in contactFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.email == "" && in.phone == "" {
				return fmt.Errorf("at least one of --email or --phone is required")
			}
			output, err := cli.newOutput()
			if err != nil {
				return err
			}
			location, err := cli.requireLocation()
			if err != nil {
				return err
			}
			client, err := cli.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			contact, err := services.CreateContact(cmd.Context(), client, location, in.input())
			if err != nil {
				return err
			}
			if output.IsQuiet() {
				return output.WriteObject(contact)
			}
			PrintSuccess("contact created")
			return output.WriteObject(contact)
		},
	}

	in.register(cmd)

	return cmd
}

func (cli *CLI) newContactsUpdateCmd() *cobra.Command {
	var in contactFlags

	cmd := &cobra.Command{
		Use:   "update <contact-id>",
		Short: "Update a contact",
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

			contact, err := services.UpdateContact(cmd.Context(), client, args[0], in.input())
			if err != nil {
				return err
			}
			return output.WriteObject(contact)
		},
	}

	in.register(cmd)

	return cmd
}

func (cli *CLI) newContactsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <contact-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a contact",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := cli.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := services.DeleteContact(cmd.Context(), client, args[0]); err != nil {
				return err
			}
			PrintSuccess("contact %s deleted", args[0])
			return nil
		},
	}
}

func (cli *CLI) newContactsTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <contact-id> <tag>...",
		Short: "Add tags to a contact",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := cli.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			tags := args[1:]
			if err := services.AddContactTags(cmd.Context(), client, args[0], tags); err != nil {
				return err
			}
			PrintSuccess("added tags: %s", strings.Join(tags, ", "))
			return nil
		},
	}
}

func (cli *CLI) newContactsUntagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "untag <contact-id> <tag>...",
		Short: "Remove tags from a contact",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := cli.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			tags := args[1:]
			if err := services.RemoveContactTags(cmd.Context(), client, args[0], tags); err != nil {
				return err
			}
			PrintSuccess("removed tags: %s", strings.Join(tags, ", "))
			return nil
		},
	}
}

func (cli *CLI) newContactsNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage contact notes",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list <contact-id>",
			Short: "List notes for a contact",
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

				notes, err := services.ListContactNotes(cmd.Context(), client, args[0])
				if err != nil {
					return err
				}
				return output.WriteList(noteColumns, notes)
			},
		},
		&cobra.Command{
			Use:   "add <contact-id> <body>",
			Short: "Add a note to a contact",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := cli.newClient()
				if err != nil {
					return err
				}
				defer client.Close()

				if _, err := services.AddContactNote(cmd.Context(), client, args[0], args[1]); err != nil {
					return err
				}
				PrintSuccess("note added")
				return nil
			},
		},
	)

	return cmd
}

func (cli *CLI) newContactsTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks on a contact",
	}

	var (
		title      string
		body       string
		dueDate    string
		assignedTo string
	)

	createCmd := &cobra.Command{
		Use:   "create <contact-id>",
		Short: "Create a task for a contact",
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

			task, err := services.CreateContactTask(cmd.Context(), client, args[0], services.TaskInput{
				Title:      title,
				Body:       body,
				DueDate:    dueDate,
				AssignedTo: assignedTo,
			})
			if err != nil {
				return err
			}
			return output.WriteObject(task)
		},
	}
	createCmd.Flags().StringVar(&title, "title", "", "Task title (required)")
	createCmd.Flags().StringVar(&body, "body", "", "Task description")
	createCmd.Flags().StringVar(&dueDate, "due", "", "Due date, ISO 8601 (default: 7 days out)")
	createCmd.Flags().StringVar(&assignedTo, "assigned-to", "", "Assignee user ID")
	_ = createCmd.MarkFlagRequired("title")

	var (
		updateTitle string
		updateDue   string
	)

	updateCmd := &cobra.Command{
		Use:   "update <contact-id> <task-id>",
		Short: "Update a task",
		Args:  cobra.ExactArgs(2),
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

			task, err := services.UpdateContactTask(cmd.Context(), client, args[0], args[1], updateTitle, updateDue)
			if err != nil {
				return err
			}
			return output.WriteObject(task)
		},
	}
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "New due date, ISO 8601")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list <contact-id>",
			Short: "List tasks for a contact",
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

				tasks, err := services.ListContactTasks(cmd.Context(), client, args[0])
				if err != nil {
					return err
				}
				return output.WriteList(contactTaskColumns, tasks)
			},
		},
		createCmd,
		&cobra.Command{
			Use:   "get <contact-id> <task-id>",
			Short: "Show a task",
			Args:  cobra.ExactArgs(2),
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

				task, err := services.GetContactTask(cmd.Context(), client, args[0], args[1])
				if err != nil {
					return err
				}
				return output.WriteObject(task)
			},
		},
		updateCmd,
		&cobra.Command{
			Use:   "complete <contact-id> <task-id>",
			Short: "Mark a task completed",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := cli.newClient()
				if err != nil {
					return err
				}
				defer client.Close()

				if _, err := services.CompleteContactTask(cmd.Context(), client, args[0], args[1], true); err != nil {
					return err
				}
				PrintSuccess("task completed")
				return nil
			},
		},
		&cobra.Command{
			Use:     "delete <contact-id> <task-id>",
			Aliases: []string{"rm"},
			Short:   "Delete a task",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := cli.newClient()
				if err != nil {
					return err
				}
				defer client.Close()

				if err := services.DeleteContactTask(cmd.Context(), client, args[0], args[1]); err != nil {
					return err
				}
				PrintSuccess("task deleted")
				return nil
			},
		},
	)

	return cmd
}

func (cli *CLI) newContactsWorkflowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Manage workflow membership for a contact",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <contact-id> <workflow-id>",
			Short: "Add a contact to a workflow",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := cli.newClient()
				if err != nil {
					return err
				}
				defer client.Close()

				if err := services.AddContactToWorkflow(cmd.Context(), client, args[0], args[1]); err != nil {
					return err
				}
				PrintSuccess("contact added to workflow")
				return nil
			},
		},
		&cobra.Command{
			Use:     "remove <contact-id> <workflow-id>",
			Aliases: []string{"rm"},
			Short:   "Remove a contact from a workflow",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := cli.newClient()
				if err != nil {
					return err
				}
				defer client.Close()

				if err := services.RemoveContactFromWorkflow(cmd.Context(), client, args[0], args[1]); err != nil {
					return err
				}
				PrintSuccess("contact removed from workflow")
				return nil
			},
		},
	)

	return cmd
}

// contactFlags collects the shared create/update flag set.
type contactFlags struct {
	email     string
	phone     string
	firstName string
	lastName  string
	name      string
	company   string
	source    string
	tags      []string
}

func (f *contactFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&f.lastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&f.name, "name", "", "Full name")
	cmd.Flags().StringVar(&f.company, "company", "", "Company name")
	cmd.Flags().StringVar(&f.source, "source", "", "Lead source")
	cmd.Flags().StringArrayVar(&f.tags, "tag", nil, "Tag to apply (repeatable)")
}

func (f *contactFlags) input() services.ContactInput {
	return services.ContactInput{
		Email:       f.email,
		Phone:       f.phone,
		FirstName:   f.firstName,
		LastName:    f.lastName,
		Name:        f.name,
		CompanyName: f.company,
		Source:      f.source,
		Tags:        f.tags,
	}
}
