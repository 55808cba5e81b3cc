package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// post is a static feed entry. Nothing here is ever fetched.
type post struct {
	Author  string
	Handle  string
	Age     string
	Body    string
	Likes   int
	Replies int
}

//nolint:gochecknoglobals // Read-only mock content.
var mockPosts = []post{
	{Author: "Dana K.", Handle: "@danak", Age: "2m", Body: "Just refreshed my feed 40 times. Still the same three posts. Living the dream.", Likes: 12, Replies: 3},
	{Author: "Lint Bot", Handle: "@lint", Age: "9m", Body: "Reminder: pulling harder does not make the network faster.", Likes: 201, Replies: 18},
	{Author: "Ravi", Handle: "@ravi_builds", Age: "24m", Body: "Shipped a feature. Nobody will see it because the feed won't refresh.", Likes: 57, Replies: 9},
	{Author: "Mo", Handle: "@mo", Age: "1h", Body: "hot take: the spinner is the content", Likes: 980, Replies: 112},
	{Author: "Sam Q.", Handle: "@samq", Age: "3h", Body: "Does anyone else's app argue with them or is it just me", Likes: 33, Replies: 41},
	{Author: "Weather", Handle: "@weather", Age: "5h", Body: "Cloudy with a chance of pull-to-refresh.", Likes: 4, Replies: 0},
	{Author: "Alex", Handle: "@alex", Age: "8h", Body: "Day 3 of trying to see new posts. The app has started calling me names.", Likes: 76, Replies: 22},
}

var (
	authorStyle = lipgloss.NewStyle().Bold(true)
	handleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	postStyle   = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

// renderFeed lays the posts out for the given width.
func renderFeed(posts []post, width int) string {
	if width <= 0 {
		width = contentMaxWidth
	}
	inner := max(width-postStyle.GetHorizontalFrameSize(), 1)
	blocks := make([]string, 0, len(posts))
	for _, p := range posts {
		head := authorStyle.Render(p.Author) + " " + handleStyle.Render(p.Handle+" · "+p.Age)
		body := lipgloss.NewStyle().Width(inner).Render(p.Body)
		stats := statsStyle.Render(fmt.Sprintf("♡ %d   ↩ %d", p.Likes, p.Replies))
		blocks = append(blocks, postStyle.Width(width).Render(strings.Join([]string{head, body, stats}, "\n")))
	}
	return strings.Join(blocks, "\n")
}
