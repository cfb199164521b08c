package api

import (
	"encoding/json"
	"time"
)

// Personagem é a ficha de um personagem conforme devolvida pela API.
// Atributos é um bloco JSON opaco: o painel nunca interpreta seus campos,
// apenas os exibe e devolve como texto.
type Personagem struct {
	ID          int               `json:"id"`
	Nome        string            `json:"nome"`
	Raca        string            `json:"raca,omitempty"`
	Descricao   string            `json:"descricao,omitempty"`
	URLFichaPDF string            `json:"url_ficha_pdf,omitempty"`
	Atributos   json.RawMessage   `json:"atributos,omitempty"`
	UsuarioID   int               `json:"usuario_id"`
	SistemaID   int               `json:"sistema_id"`
	Campanhas   []CampanhaVinculo `json:"campanhas,omitempty"`
}

// CampanhaVinculo embrulha a referência de campanha na associação N:N.
type CampanhaVinculo struct {
	Campanha CampanhaResumo `json:"campanha"`
}

// CampanhaResumo é a projeção mínima de campanha usada em vínculos.
type CampanhaResumo struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}

// Campanha representa uma campanha com seu elenco de personagens.
type Campanha struct {
	ID           int                 `json:"id"`
	Nome         string              `json:"nome"`
	Descricao    string              `json:"descricao,omitempty"`
	MestreDoJogo string              `json:"mestre_do_jogo,omitempty"`
	DataInicio   *time.Time          `json:"data_inicio,omitempty"`
	Sistema      SistemaResumo       `json:"sistema"`
	SistemaID    int                 `json:"sistema_id"`
	Personagens  []PersonagemVinculo `json:"personagens,omitempty"`
}

// PersonagemVinculo embrulha a referência de personagem na associação N:N.
type PersonagemVinculo struct {
	Personagem Personagem `json:"personagem"`
}

// SistemaResumo é a projeção de sistema embutida em campanhas.
type SistemaResumo struct {
	Nome string `json:"nome"`
}

// Sistema é a entidade plana de sistema de jogo.
type Sistema struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}

// Usuario representa uma conta do repositório.
type Usuario struct {
	ID          int    `json:"id"`
	NomeUsuario string `json:"nome_usuario"`
	TipoUsuario string `json:"tipo_usuario"`
}

// Atividade é uma entrada somente-leitura do log de um usuário.
type Atividade struct {
	ID        int           `json:"id"`
	Action    string        `json:"action"`
	Timestamp time.Time     `json:"timestamp"`
	Usuario   UsuarioResumo `json:"usuario"`
}

// UsuarioResumo identifica o autor de uma atividade.
type UsuarioResumo struct {
	NomeUsuario string `json:"nome_usuario"`
}

// DashboardStats agrega os totais e atividades recentes do painel ADMIN.
type DashboardStats struct {
	TotalUsuarios    int         `json:"totalUsuarios"`
	TotalPersonagens int         `json:"totalPersonagens"`
	TotalCampanhas   int         `json:"totalCampanhas"`
	TotalSistemas    int         `json:"totalSistemas"`
	LastActivities   []Atividade `json:"lastActivities"`
}

// PersonagemInput é o corpo de criação/edição de personagem.
type PersonagemInput struct {
	Nome      string          `json:"nome"`
	Raca      string          `json:"raca"`
	Descricao string          `json:"descricao"`
	SistemaID int             `json:"sistema_id"`
	Atributos json.RawMessage `json:"atributos"`
}

// CampanhaInput é o corpo de criação/edição de campanha.
type CampanhaInput struct {
	Nome         string     `json:"nome"`
	Descricao    string     `json:"descricao"`
	MestreDoJogo string     `json:"mestre_do_jogo"`
	DataInicio   *time.Time `json:"data_inicio"`
	SistemaID    int        `json:"sistema_id"`
}

// SistemaInput é o corpo de criação/edição de sistema.
type SistemaInput struct {
	Nome string `json:"nome"`
}

// Credenciais é o corpo de POST /login.
type Credenciais struct {
	NomeUsuario string `json:"nome_usuario"`
	Senha       string `json:"senha"`
}

// CadastroInput é o corpo de registro de usuário.
type CadastroInput struct {
	NomeUsuario string `json:"nome_usuario"`
	Senha       string `json:"senha"`
	TipoUsuario string `json:"tipo_usuario"`
}

// UsuarioInput é o corpo de edição de usuário pelo ADMIN.
type UsuarioInput struct {
	NomeUsuario string `json:"nome_usuario"`
	TipoUsuario string `json:"tipo_usuario"`
}
