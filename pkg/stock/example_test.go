package stock_test

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/restock/pkg/logger"
	"github.com/dmitrymomot/restock/pkg/stock"
)

type printSubscriber struct {
	target string
	text   string
}

func (p *printSubscriber) Receive(_ context.Context, a stock.Alert) error {
	fmt.Printf("%s: %s (%d left)\n", p.target, p.text, a.Count)
	return nil
}

func Example() {
	ctx := context.Background()
	subject := stock.NewSubject("iphone", stock.WithLogger(logger.Nop()))

	subject.Register(&printSubscriber{target: "ashuisavid@gmail.com", text: "product is back in stock!!!"})
	subject.Register(&printSubscriber{target: "763536281", text: "Stock is back again!!!"})

	_ = subject.SetCount(ctx, 20)
	_ = subject.SetCount(ctx, 25) // already in stock
	fmt.Println("count:", subject.Count())

	// Output:
	// ashuisavid@gmail.com: product is back in stock!!! (20 left)
	// 763536281: Stock is back again!!! (20 left)
	// count: 25
}
