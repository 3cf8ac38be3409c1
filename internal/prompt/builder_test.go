package prompt

import (
	"strings"
	"testing"

	"shop-consultant/internal/catalog"
)

func TestBuild_NoProducts(t *testing.T) {
	b := NewBuilder("YoriShop")
	p := b.Build("хочу телепорт", nil)
	if p.System != SystemInstruction {
		t.Fatalf("unexpected system: %q", p.System)
	}
	if !strings.Contains(p.User, "Клиент спросил: хочу телепорт.") || !strings.Contains(p.User, "нет подходящих товаров") {
		t.Fatalf("unexpected no-products prompt: %q", p.User)
	}
	if strings.Contains(p.User, "Товары:") {
		t.Fatalf("no-products prompt must not list goods: %q", p.User)
	}
}

func TestBuild_EnumeratesProducts(t *testing.T) {
	b := NewBuilder("YoriShop")
	products := []catalog.Product{
		{ID: 1, Name: "Кроссовки Runner", Description: "лёгкие", Price: 7500},
		{ID: 2, Name: "Кроссовки Trail", Price: 7999.5},
	}
	p := b.Build("хочу кроссовки до 8000", products)

	for _, want := range []string{
		"интернет-магазина YoriShop",
		"Товары:\n1. Кроссовки Runner - 7500 руб. лёгкие\n2. Кроссовки Trail - 7999.5 руб. \n\n",
		"Вопрос клиента: хочу кроссовки до 8000",
		"плюсы/минусы",
		"(1-2 варианта)",
		"альтернативы",
	} {
		if !strings.Contains(p.User, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p.User)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	b := NewBuilder("Shop")
	products := []catalog.Product{{ID: 1, Name: "A", Price: 1}, {ID: 2, Name: "B", Description: "d", Price: 2}}
	first := b.Build("q", products)
	for i := 0; i < 10; i++ {
		if got := b.Build("q", products); got != first {
			t.Fatalf("build is not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	cases := map[float64]string{7500: "7500", 99.9: "99.9", 0: "0"}
	for in, want := range cases {
		if got := FormatPrice(in); got != want {
			t.Fatalf("FormatPrice(%v) = %q, want %q", in, got, want)
		}
	}
}
