package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"shop-consultant/internal/catalog"
)

// SystemInstruction is the fixed consultant persona sent with every request.
const SystemInstruction = "Ты эксперт-консультант магазина. Отвечай по товарам ясно и кратко."

// Prompt is a system/user message pair for a single completion.
type Prompt struct {
	System string
	User   string
}

// Builder renders prompts. It holds no per-request state.
type Builder struct {
	storeName string
}

func NewBuilder(storeName string) *Builder {
	return &Builder{storeName: storeName}
}

// Build renders the prompt for query and its search results.
func (b *Builder) Build(query string, products []catalog.Product) Prompt {
	if len(products) == 0 {
		return Prompt{
			System: SystemInstruction,
			User: fmt.Sprintf("Клиент спросил: %s. У магазина нет подходящих товаров. "+
				"Ответь кратко и предложи уточнить запрос.", query),
		}
	}

	var sb strings.Builder
	sb.WriteString("Ты — дружелюбный консультант интернет-магазина " + b.storeName + ". ")
	sb.WriteString("Внизу — список подходящих товаров. Оцени их и помоги клиенту выбрать.\n\n")
	sb.WriteString("Товары:\n")
	sb.WriteString(Enumerate(products))
	sb.WriteString("\n\nВопрос клиента: " + query + "\n\n")
	sb.WriteString("Ответь простым языком, укажи плюсы/минусы каждого товара (коротко), ")
	sb.WriteString("и предложи лучший выбор (1-2 варианта) с объяснением. ")
	sb.WriteString("Если нужно — предложи альтернативы.")
	return Prompt{System: SystemInstruction, User: sb.String()}
}

// Enumerate lists products one per line as "1. name - price руб. description".
func Enumerate(products []catalog.Product) string {
	lines := make([]string, 0, len(products))
	for i, p := range products {
		lines = append(lines, fmt.Sprintf("%d. %s - %s руб. %s", i+1, p.Name, FormatPrice(p.Price), p.Description))
	}
	return strings.Join(lines, "\n")
}

// FormatPrice prints the shortest decimal representation of v, so 7990 renders as "7990".
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
