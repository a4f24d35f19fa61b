package asynch_test

import (
	"context"
	"fmt"
	"time"

	"github.com/baxromumarov/asynch"
	"github.com/baxromumarov/asynch/chanx"
)

func ExampleMerge() {
	ctx := context.Background()
	a := chanx.Wrap(make(chan string, 1))
	b := chanx.Wrap(make(chan string, 1))
	m := asynch.Merge[string](a, b)

	// Both legs receive the message.
	if err := m.Send(ctx, "hello"); err != nil {
		fmt.Println("error:", err)
		return
	}

	// Each Recv returns one of them; none is lost.
	for range 2 {
		v, err := m.Recv(ctx)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println(v)
	}
	// Output:
	// hello
	// hello
}

func ExampleAdapt() {
	ctx := context.Background()
	inner := chanx.Wrap(make(chan int, 4))
	for i := 1; i <= 4; i++ {
		_ = inner.Send(ctx, i)
	}

	evens := asynch.Adapt[int](inner, func(v int) (int, bool) {
		return v * 2, v%2 == 0
	})

	for range 2 {
		v, _ := evens.Recv(ctx)
		fmt.Println(v)
	}
	// Output:
	// 4
	// 8
}

func ExampleSelect() {
	reply := func(context.Context) (string, error) { return "pong", nil }
	timeout := chanx.After(time.Second)

	e, err := asynch.Select(context.Background(), reply, timeout.Recv)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if v, ok := e.First(); ok {
		fmt.Println("reply:", v)
	} else {
		fmt.Println("timed out")
	}
	// Output:
	// reply: pong
}

func ExampleDummy() {
	ctx := context.Background()
	audit := asynch.Dummy[string]() // auditing disabled
	primary := chanx.Wrap(make(chan string, 1))
	m := asynch.Merge[string](primary, audit)

	_ = m.Send(ctx, "order-17")
	v, _ := m.Recv(ctx)
	fmt.Println(v)
	// Output:
	// order-17
}
