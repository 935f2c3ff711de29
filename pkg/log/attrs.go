package log

import "log/slog"

func RunID[T ~string](id T) slog.Attr {
	return slog.String("run_id", string(id))
}

func Locator(locator string) slog.Attr {
	return slog.String("locator", locator)
}

func Index(i int) slog.Attr {
	return slog.Int("index", i)
}

func Source(bucket, key string) slog.Attr {
	return slog.Group("source",
		slog.String("bucket", bucket),
		slog.String("key", key))
}

func Error(err error) slog.Attr {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return slog.String("error", msg)
}
