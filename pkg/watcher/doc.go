// Package watcher drives cache invalidation for translation files.
//
// Watcher follows the file system with fsnotify and reports changes to
// files matching **/<lang-root>/**/*.php, where lang-root comes from the
// configured language path templates:
//
//	w, err := watcher.New(root, []string{"lang", "resources/lang"},
//		func(ctx context.Context, ev watcher.Event) {
//			_ = store.InvalidateFile(ctx, ev.Path)
//		},
//		watcher.WithLogger(log),
//	)
//	if err := w.Start(ctx); err != nil {
//		return err
//	}
//	defer w.Close()
//
// Scheduler flushes on a cron schedule for environments where file events
// do not arrive:
//
//	s, err := watcher.Schedule("@every 5m", store.Invalidate)
package watcher
