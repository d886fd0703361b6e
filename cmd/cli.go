package main

import (
	"chat-thread/domain/chat"
	"chat-thread/errors"
	"chat-thread/pipeline"
	"chat-thread/projection"
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

type cli struct {
	engine *pipeline.Engine
	out    io.Writer
}

func newCLI(engine *pipeline.Engine, out io.Writer) cli {
	return cli{engine: engine, out: out}
}

func (c cli) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.register(ctx, args)
	case "send":
		return c.send(ctx, args, false)
	case "reply":
		return c.send(ctx, args, true)
	case "edit":
		return c.edit(ctx, args)
	case "read":
		return c.read(ctx, args)
	case "delete":
		return c.delete(ctx, args)
	case "unread":
		return c.unread(args)
	case "thread":
		return c.thread(args)
	case "history":
		return c.history(args)
	case "search":
		return c.search(ctx, args)
	case "delete-user":
		return c.deleteUser(ctx, args)
	default:
		usage()
		return fmt.Errorf("%w: unknown command %q", errors.ErrInvalidCommand, command)
	}
}

func (c cli) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "Username")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidCommand, err)
	}
	user, err := c.engine.RegisterUser(ctx, chat.RegisterUserCommand{Username: *name})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s %s\n", color.New(color.FgGreen).Render("registered"), user.ID)
	return nil
}

func (c cli) send(ctx context.Context, args []string, reply bool) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	from := fs.String("from", "", "Sender username")
	to := fs.String("to", "", "Receiver username, empty for a broadcast")
	content := fs.String("content", "", "Message content")
	parent := fs.String("parent", "", "Message to reply to")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidCommand, err)
	}

	sender, err := c.engine.GetUserByUsername(*from)
	if err != nil {
		return err
	}
	cmd := chat.SendMessageCommand{SenderID: sender.ID, Content: *content}
	if *to != "" {
		receiver, err := c.engine.GetUserByUsername(*to)
		if err != nil {
			return err
		}
		cmd.ReceiverID = &receiver.ID
	}
	if reply {
		parentID, err := parseID(*parent)
		if err != nil {
			return err
		}
		cmd.ParentID = &parentID
	}

	message, err := c.engine.Send(ctx, cmd)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s %s (thread %s)\n", color.New(color.FgGreen).Render("sent"), message.ID, message.ThreadID)
	return nil
}

func (c cli) edit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	id := fs.String("id", "", "Message ID")
	content := fs.String("content", "", "New content")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidCommand, err)
	}
	messageID, err := parseID(*id)
	if err != nil {
		return err
	}
	message, err := c.engine.EditContent(ctx, chat.EditMessageCommand{MessageID: messageID, Content: *content})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s %s edited=%t\n", color.New(color.FgGreen).Render("updated"), message.ID, message.Edited)
	return nil
}

func (c cli) read(ctx context.Context, args []string) error {
	messageID, err := c.idFlag("read", args)
	if err != nil {
		return err
	}
	return c.engine.MarkRead(ctx, messageID)
}

func (c cli) delete(ctx context.Context, args []string) error {
	messageID, err := c.idFlag("delete", args)
	if err != nil {
		return err
	}
	deleted, err := c.engine.DeleteMessage(ctx, messageID)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s %d message(s)\n", color.New(color.FgYellow).Render("deleted"), len(deleted))
	return nil
}

func (c cli) unread(args []string) error {
	fs := flag.NewFlagSet("unread", flag.ContinueOnError)
	username := fs.String("user", "", "Username")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidCommand, err)
	}
	user, err := c.engine.GetUserByUsername(*username)
	if err != nil {
		return err
	}
	views, err := c.engine.Unread(user.ID)
	if err != nil {
		return err
	}

	table := c.newTable("ID", "From", "At", "Content")
	for _, view := range views {
		table.Append([]string{
			view.ID.String(),
			view.Sender.Username,
			view.CreatedAt.Format("2006-01-02 15:04:05"),
			view.Content,
		})
	}
	table.Render()
	fmt.Fprintf(c.out, "%s\n", color.New(color.FgCyan).Render(fmt.Sprintf("%d unread", len(views))))
	return nil
}

func (c cli) thread(args []string) error {
	messageID, err := c.idFlag("thread", args)
	if err != nil {
		return err
	}
	root, err := c.engine.Thread(messageID)
	if err != nil {
		return err
	}
	c.printNode(root, 0)
	return nil
}

func (c cli) printNode(node *projection.ThreadNode, depth int) {
	marker := ""
	if !node.Message.Read && node.Message.HasReceiver() {
		marker = color.New(color.FgCyan).Render(" *")
	}
	edited := ""
	if node.Message.Edited {
		edited = color.New(color.FgMagenta).Render(" (edited)")
	}
	fmt.Fprintf(c.out, "%s%s: %s%s%s  [%s]\n",
		strings.Repeat("  ", depth),
		color.New(color.OpBold).Render(node.Message.Sender.Username),
		node.Message.Content, edited, marker, node.Message.ID)
	for _, reply := range node.Replies {
		c.printNode(reply, depth+1)
	}
}

func (c cli) history(args []string) error {
	messageID, err := c.idFlag("history", args)
	if err != nil {
		return err
	}
	histories, err := c.engine.History(messageID)
	if err != nil {
		return err
	}
	table := c.newTable("#", "Edited at", "Previous content")
	for i, h := range histories {
		table.Append([]string{strconv.Itoa(i + 1), h.EditedAt.Format("2006-01-02 15:04:05"), h.OldContent})
	}
	table.Render()
	return nil
}

func (c cli) search(ctx context.Context, args []string) error {
	views, err := c.engine.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	table := c.newTable("ID", "From", "Thread", "Content")
	for _, view := range views {
		table.Append([]string{view.ID.String(), view.Sender.Username, view.ThreadID.String(), view.Content})
	}
	table.Render()
	return nil
}

func (c cli) deleteUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-user", flag.ContinueOnError)
	username := fs.String("user", "", "Username")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidCommand, err)
	}
	user, err := c.engine.GetUserByUsername(*username)
	if err != nil {
		return err
	}
	report, err := c.engine.DeleteUser(ctx, user.ID)
	if err != nil {
		return err
	}
	table := c.newTable("Messages", "Notifications", "History rows")
	table.Append([]string{
		strconv.Itoa(len(report.MessageIDs)),
		strconv.Itoa(report.Notifications),
		strconv.Itoa(report.Histories),
	})
	table.Render()
	return nil
}

func (c cli) idFlag(name string, args []string) (uuid.UUID, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	id := fs.String("id", "", "Message ID")
	if err := fs.Parse(args); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", errors.ErrInvalidCommand, err)
	}
	return parseID(*id)
}

func (c cli) newTable(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(c.out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	return table
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q is not a message ID", errors.ErrInvalidCommand, raw)
	}
	return id, nil
}
