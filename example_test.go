package asyncmultimap_test

import (
	"context"
	"fmt"

	asyncmultimap "github.com/karupanerura/async-multimap"
	"github.com/karupanerura/async-multimap/execctx"
	"github.com/karupanerura/async-multimap/store/memstore"
)

func ExampleMultiMapAdapter_Get() {
	loop := execctx.NewEventLoop("example")
	defer loop.Close()

	subscriptions, err := asyncmultimap.New(
		&execctx.DefaultProvider{Fallback: loop},
		memstore.NewMultiMap[string, string](),
		memstore.NewKeyIndex[string](),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	added := make(chan struct{})
	subscriptions.Add(ctx, "news.sports", "node-1", func(r asyncmultimap.Result[struct{}]) {
		if r.Failed() {
			panic(r.Cause())
		}
		close(added)
	})
	<-added

	done := make(chan struct{})
	subscriptions.Get(ctx, "news.sports", func(r asyncmultimap.Result[*asyncmultimap.ChoosableResultSet[string]]) {
		defer close(done)
		if r.Failed() {
			panic(r.Cause())
		}
		node, ok := r.Value().Choose()
		fmt.Println(node, ok)
	})
	<-done

	// Output: node-1 true
}

func ExampleMultiMapAdapter_RemoveAllForValue() {
	loop := execctx.NewEventLoop("example")
	defer loop.Close()

	store := memstore.NewMultiMap[string, string]()
	subscriptions, err := asyncmultimap.New(&execctx.DefaultProvider{Fallback: loop}, store, memstore.NewKeyIndex[string]())
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	for _, topic := range []string{"a", "b"} {
		subscriptions.Add(ctx, topic, "node-1", nil)
	}
	if err := subscriptions.Drain(ctx); err != nil {
		panic(err)
	}

	done := make(chan struct{})
	subscriptions.RemoveAllForValue(ctx, "node-1", func(r asyncmultimap.Result[struct{}]) {
		defer close(done)
		fmt.Println(r.Succeeded(), store.Len())
	})
	<-done

	// Output: true 0
}
