package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yourusername/yt-playlist-go/internal/domain"
)

// SelectOptions carries the CLI flags that pick a target
type SelectOptions struct {
	URL         string
	SingleVideo bool
	UseDefault  bool
}

// TargetSelector resolves the URL to download: explicit flag, fallback URL,
// or an interactive prompt on in
type TargetSelector struct {
	targets *domain.TargetsConfig
	in      *bufio.Reader
	out     io.Writer
}

// NewTargetSelector creates a selector prompting on in and writing to out
func NewTargetSelector(targets *domain.TargetsConfig, in io.Reader, out io.Writer) *TargetSelector {
	return &TargetSelector{
		targets: targets,
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// Select applies the first matching rule. It returns domain.ErrCancelled when
// ctx is cancelled or input ends while prompting.
func (s *TargetSelector) Select(ctx context.Context, opts SelectOptions) (domain.Target, error) {
	switch {
	case opts.URL != "":
		fmt.Fprintf(s.out, "Using %s URL from command line: %s\n", domain.ClassifyURL(opts.URL), opts.URL)
		return domain.Target{URL: opts.URL, Source: domain.SourceFlag}, nil

	case opts.SingleVideo:
		fmt.Fprintf(s.out, "Using hardcoded single video URL: %s\n", s.targets.DefaultVideoURL)
		return domain.Target{URL: s.targets.DefaultVideoURL, Source: domain.SourceDefaultVideo}, nil

	case opts.UseDefault:
		fmt.Fprintf(s.out, "Using hardcoded playlist URL: %s\n", s.targets.DefaultPlaylistURL)
		return domain.Target{URL: s.targets.DefaultPlaylistURL, Source: domain.SourceDefaultPlaylist}, nil
	}

	return s.prompt(ctx)
}

func (s *TargetSelector) prompt(ctx context.Context) (domain.Target, error) {
	fmt.Fprintf(s.out, "\n💡 Tip: You can use --url <URL>, --use-default (playlist), or --single-video to skip this prompt\n")
	fmt.Fprintf(s.out, "Default playlist URL: %s\n", s.targets.DefaultPlaylistURL)
	fmt.Fprintf(s.out, "Default single video URL: %s\n", s.targets.DefaultVideoURL)

	for {
		fmt.Fprint(s.out, "\nEnter YouTube URL (playlist or single video, or press Enter for default playlist): ")
		answer, err := s.readLine(ctx)
		if err != nil {
			return domain.Target{}, err
		}

		if answer == "" {
			fmt.Fprintf(s.out, "Using default playlist URL: %s\n", s.targets.DefaultPlaylistURL)
			return domain.Target{URL: s.targets.DefaultPlaylistURL, Source: domain.SourcePromptDefault}, nil
		}

		if domain.LooksLikeVideoURL(answer) {
			return domain.Target{URL: answer, Source: domain.SourcePrompt}, nil
		}

		fmt.Fprintln(s.out, "⚠️  Warning: This doesn't appear to be a YouTube URL.")
		fmt.Fprint(s.out, "Continue anyway? (y/n): ")
		confirm, err := s.readLine(ctx)
		if err != nil {
			return domain.Target{}, err
		}

		switch strings.ToLower(confirm) {
		case "y", "yes":
			return domain.Target{URL: answer, Source: domain.SourcePrompt}, nil
		}
	}
}

type lineResult struct {
	line string
	err  error
}

// readLine blocks for one trimmed line. The read runs on a helper goroutine
// only so an interrupt can end the wait; it is abandoned on cancellation.
func (s *TargetSelector) readLine(ctx context.Context) (string, error) {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := s.in.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", domain.ErrCancelled
	case r := <-ch:
		if r.err == nil {
			return strings.TrimSpace(r.line), nil
		}
		if errors.Is(r.err, io.EOF) {
			// A final unterminated line still counts as an answer
			if r.line != "" {
				return strings.TrimSpace(r.line), nil
			}
			return "", domain.ErrCancelled
		}
		return "", fmt.Errorf("failed to read input: %w", r.err)
	}
}
