package web

import "strings"

// filtraPorNome devolve os itens cujo nome contém o termo buscado, sem
// diferenciar maiúsculas. Termo vazio devolve a coleção inteira.
func filtraPorNome[T any](itens []T, nome func(T) string, termo string) []T {
	if termo == "" {
		return itens
	}
	termo = strings.ToLower(termo)

	filtrados := make([]T, 0, len(itens))
	for _, item := range itens {
		if strings.Contains(strings.ToLower(nome(item)), termo) {
			filtrados = append(filtrados, item)
		}
	}
	return filtrados
}
