package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pribylovaa/go-forum-comments/internal/config"
	"github.com/pribylovaa/go-forum-comments/internal/models"
	"github.com/pribylovaa/go-forum-comments/internal/pkg/log"
	"github.com/pribylovaa/go-forum-comments/internal/service"
	"github.com/pribylovaa/go-forum-comments/internal/storage/httpapi"
)

// Константы окружения (как в остальных сервисах).
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const hiddenPlaceholder = "[comment hidden]"

func main() {
	var (
		configPath string
		postID     int64
		viewerID   int64
	)
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Int64Var(&postID, "post", 0, "post id to open")
	flag.Int64Var(&viewerID, "viewer", 0, "viewer user id (0 — anonymous)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	lg := setupLogger(cfg.Env)
	slog.SetDefault(lg)
	lg.Info("starting comments-cli", "env", cfg.Env, "post_id", postID, "viewer_id", viewerID)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	defer cancel()
	ctx = log.Into(ctx, lg)

	client := httpapi.New(cfg)
	svc := service.New(client, *cfg)

	sec, err := svc.OpenSection(ctx, postID, viewerID)
	if err != nil {
		lg.Error("open_section_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	tree := sec.Tree()
	if len(tree) == 0 {
		fmt.Println("no comments yet")
		return
	}

	now := time.Now()
	for _, node := range tree {
		renderNode(node, now)
	}
}

// renderNode печатает узел и его ответы с отступом по уровню.
func renderNode(n models.CommentNode, now time.Time) {
	indent := strings.Repeat("  ", int(n.Level-1))

	content := n.Content
	if n.IsHidden {
		content = hiddenPlaceholder
	}

	meta := fmt.Sprintf("%s · %s", n.AuthorName, timeAgo(now, n.CreatedAt))
	if n.LikeCount > 0 {
		meta += fmt.Sprintf(" · %d ♥", n.LikeCount)
	}
	if n.IsOwn {
		meta += " · you"
	}

	fmt.Printf("%s%s\n%s  %s\n", indent, meta, indent, content)

	for _, reply := range n.Replies {
		renderNode(reply, now)
	}
}

// timeAgo — человекочитаемый возраст комментария.
func timeAgo(now, at time.Time) string {
	if at.IsZero() {
		return "just now"
	}

	d := now.Sub(at)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return at.Format("02.01.2006")
	}
}

// setupLogger — тот же подход, что в остальных сервисах.
func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
