// Package lingopipe provides a text translation engine with pluggable
// backends.
//
// Lingopipe translates text between natural languages using external
// translation services (Google, LibreTranslate, OpenAI) with an LRU+TTL
// cache in front of outbound calls, ordered provider fallback, retry with
// exponential backoff, and optional rate limiting and circuit breaking.
//
// Basic usage:
//
//	p := provider.NewGoogleProvider(provider.GoogleConfig{})
//
//	svc := lingopipe.NewService(p,
//	    lingopipe.WithCache(cache.NewLRUCache(1000, 24*time.Hour)),
//	)
//
//	result, err := svc.Translate(ctx, lingopipe.Request{
//	    Text:   "Hello World",
//	    Source: lingopipe.AutoDetect,
//	    Target: "es",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Text) // Hola Mundo
package lingopipe
