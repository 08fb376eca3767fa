package cli

import (
	"testing"

	"github.com/fsnotify/fsnotify"
)

func Test_RelevantEvent_FiltersEditorChurn_When_EventsArrive(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{
			name:  "markdown write",
			event: fsnotify.Event{Name: "/docs/guide/docs.md", Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "partial created",
			event: fsnotify.Event{Name: "/docs/guide/partials/new.md", Op: fsnotify.Create},
			want:  true,
		},
		{
			name:  "fragment removed",
			event: fsnotify.Event{Name: "/docs/guide/docs.md", Op: fsnotify.Remove},
			want:  true,
		},
		{
			name:  "manifest write",
			event: fsnotify.Event{Name: "/docs/guide/.topic.json", Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "chmod only",
			event: fsnotify.Event{Name: "/docs/guide/docs.md", Op: fsnotify.Chmod},
			want:  false,
		},
		{
			name:  "hidden file",
			event: fsnotify.Event{Name: "/docs/guide/.docs.md.swp", Op: fsnotify.Write},
			want:  false,
		},
		{
			name:  "editor backup",
			event: fsnotify.Event{Name: "/docs/guide/docs.md~", Op: fsnotify.Write},
			want:  false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := relevantEvent(tc.event)
			if got != tc.want {
				t.Fatalf("relevantEvent(%v) = %v, want %v", tc.event, got, tc.want)
			}
		})
	}
}
