package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/assocportal/internal/client/models"
)

type portalCommand struct {
	usage string
	args  int
	run   func(a *App, ctx context.Context, args []string) error
}

var portalCommands = map[string]portalCommand{
	"me":           {usage: "me", run: (*App).me},
	"associations": {usage: "associations", run: (*App).listAssociations},
	"association":  {usage: "association <id>", args: 1, run: (*App).showAssociation},
	"newassoc":     {usage: "newassoc", run: (*App).createAssociation},
	"join":         {usage: "join <association id>", args: 1, run: (*App).joinAssociation},
	"posts":        {usage: "posts <association id>", args: 1, run: (*App).listPosts},
	"post":         {usage: "post <association id>", args: 1, run: (*App).createPost},
	"comment":      {usage: "comment <post id>", args: 1, run: (*App).comment},
	"polls":        {usage: "polls <association id>", args: 1, run: (*App).listPolls},
	"newpoll":      {usage: "newpoll <association id>", args: 1, run: (*App).createPoll},
	"vote":         {usage: "vote <poll id> <option id>", args: 2, run: (*App).vote},
	"events":       {usage: "events <association id>", args: 1, run: (*App).listEvents},
	"newevent":     {usage: "newevent <association id>", args: 1, run: (*App).createEvent},
	"participate":  {usage: "participate <event id>", args: 1, run: (*App).participate},
	"inbox":        {usage: "inbox", run: (*App).inbox},
	"messages":     {usage: "messages <user id>", args: 1, run: (*App).messages},
	"send":         {usage: "send <user id>", args: 1, run: (*App).sendMessage},
}

// Portal runs one of the signed-in commands. Anonymous users are routed to
// the entry route instead.
func (a *App) Portal(ctx context.Context, cmd string, args []string) error {
	c, ok := portalCommands[cmd]
	if !ok {
		return errUnknownCommand
	}
	if len(args) < c.args {
		fmt.Fprintln(a.out, "Usage:", c.usage)
		return nil
	}
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "You need to sign in first.")
		a.router.Navigate(ctx, a.config.EntryRoute)
		return nil
	}

	err := c.run(a, ctx, args)
	a.report(err)
	return err
}

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func (a *App) me(ctx context.Context, _ []string) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> %s (%s)\n", u.DisplayName(), u.Email, u.Role, u.ID)
	return nil
}

func (a *App) listAssociations(ctx context.Context, _ []string) error {
	list, err := a.api.Associations(ctx)
	if err != nil {
		return err
	}
	tw := a.table()
	fmt.Fprintln(tw, "ID\tNAME\tCITY\tCATEGORY")
	for _, as := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", as.ID, as.Name, as.City, as.Category)
	}
	return tw.Flush()
}

func (a *App) showAssociation(ctx context.Context, args []string) error {
	as, err := a.api.Association(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\ncity: %s\ncategory: %s\nadmin: %s\ncreated: %s\n",
		as.Name, as.City, as.Category, as.AdminID, as.CreatedAt.Format(time.RFC3339))
	return nil
}

func (a *App) createAssociation(ctx context.Context, _ []string) error {
	var in models.NewAssociation
	var err error
	if in.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if in.City, err = getSimpleText(a.reader, "City", a.out); err != nil {
		return err
	}
	if in.Category, err = getSimpleText(a.reader, "Category", a.out); err != nil {
		return err
	}

	as, err := a.api.CreateAssociation(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Association %s created.\n", as.ID)
	return nil
}

func (a *App) joinAssociation(ctx context.Context, args []string) error {
	m, err := a.api.JoinAssociation(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Membership request %s is %s.\n", m.ID, m.Status)
	return nil
}

func (a *App) listPosts(ctx context.Context, args []string) error {
	posts, err := a.api.Posts(ctx, args[0])
	if err != nil {
		return err
	}
	for _, p := range posts {
		fmt.Fprintf(a.out, "[%s] %s by %s\n%s\n\n", p.ID, p.CreatedAt.Format(time.RFC3339), p.AuthorID, p.Content)
	}
	return nil
}

func (a *App) createPost(ctx context.Context, args []string) error {
	content, err := GetMultiline(a.reader, "Post content", a.out)
	if err != nil {
		return err
	}
	p, err := a.api.CreatePost(ctx, args[0], models.NewPost{Content: content})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post %s published.\n", p.ID)
	return nil
}

func (a *App) comment(ctx context.Context, args []string) error {
	content, err := getSimpleText(a.reader, "Comment", a.out)
	if err != nil {
		return err
	}
	c, err := a.api.Comment(ctx, args[0], content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Comment %s added.\n", c.ID)
	return nil
}

func (a *App) listPolls(ctx context.Context, args []string) error {
	polls, err := a.api.Polls(ctx, args[0])
	if err != nil {
		return err
	}
	for _, p := range polls {
		fmt.Fprintf(a.out, "[%s] %s (until %s)\n", p.ID, p.Question, p.ExpiresAt.Format(time.RFC3339))
		for _, o := range p.Options {
			fmt.Fprintf(a.out, "  %s: %s\n", o.ID, o.OptionText)
		}
	}
	return nil
}

func (a *App) createPoll(ctx context.Context, args []string) error {
	question, err := getSimpleText(a.reader, "Question", a.out)
	if err != nil {
		return err
	}
	options, err := GetList(a.reader, "Options, one per line", a.out)
	if err != nil {
		return err
	}
	raw, err := getSimpleText(a.reader, "Expires (RFC3339 time or duration such as 72h)", a.out)
	if err != nil {
		return err
	}
	expiresAt, err := parseWhen(raw, time.Now())
	if err != nil {
		return err
	}

	p, err := a.api.CreatePoll(ctx, args[0], models.NewPoll{Question: question, Options: options, ExpiresAt: expiresAt})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Poll %s created.\n", p.ID)
	return nil
}

func (a *App) vote(ctx context.Context, args []string) error {
	v, err := a.api.Vote(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Vote %s recorded.\n", v.ID)
	return nil
}

func (a *App) listEvents(ctx context.Context, args []string) error {
	events, err := a.api.Events(ctx, args[0])
	if err != nil {
		return err
	}
	tw := a.table()
	fmt.Fprintln(tw, "ID\tDATE\tTITLE\tLOCATION\tSEATS")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", e.ID, e.Date.Format(time.RFC3339), e.Title, e.Location, e.MaxParticipants)
	}
	return tw.Flush()
}

func (a *App) createEvent(ctx context.Context, args []string) error {
	var in models.NewEvent
	var err error
	if in.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if in.Description, err = GetMultiline(a.reader, "Description", a.out); err != nil {
		return err
	}
	raw, err := getSimpleText(a.reader, "Date (RFC3339 time or duration from now)", a.out)
	if err != nil {
		return err
	}
	if in.Date, err = parseWhen(raw, time.Now()); err != nil {
		return err
	}
	if in.Location, err = getSimpleText(a.reader, "Location", a.out); err != nil {
		return err
	}
	raw, err = getSimpleText(a.reader, "Max participants (0 for unlimited)", a.out)
	if err != nil {
		return err
	}
	if raw != "" {
		if in.MaxParticipants, err = strconv.Atoi(raw); err != nil {
			return fmt.Errorf("max participants: %w", err)
		}
	}

	e, err := a.api.CreateEvent(ctx, args[0], in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Event %s created.\n", e.ID)
	return nil
}

func (a *App) participate(ctx context.Context, args []string) error {
	p, err := a.api.Participate(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered for event %s (%s).\n", p.EventID, p.ID)
	return nil
}

func (a *App) inbox(ctx context.Context, _ []string) error {
	msgs, err := a.api.Conversations(ctx)
	if err != nil {
		return err
	}
	a.printMessages(msgs)
	return nil
}

func (a *App) messages(ctx context.Context, args []string) error {
	msgs, err := a.api.MessagesWith(ctx, args[0])
	if err != nil {
		return err
	}
	a.printMessages(msgs)
	return nil
}

func (a *App) sendMessage(ctx context.Context, args []string) error {
	content, err := GetMultiline(a.reader, "Message", a.out)
	if err != nil {
		return err
	}
	m, err := a.api.SendMessage(ctx, args[0], content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Message %s sent.\n", m.ID)
	return nil
}

func (a *App) printMessages(msgs []models.Message) {
	for _, m := range msgs {
		read := "unread"
		if m.ReadAt != nil {
			read = "read"
		}
		fmt.Fprintf(a.out, "%s %s -> %s (%s): %s\n",
			m.CreatedAt.Format(time.RFC3339), m.SenderID, m.ReceiverID, read, m.Content)
	}
}

// parseWhen accepts an RFC3339 timestamp or a duration relative to now.
func parseWhen(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(d), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC3339 time or duration, got %q", s)
	}
	return t, nil
}
