package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/repositoriorpg/painel/internal/api"
	"github.com/repositoriorpg/painel/internal/auth"
	"github.com/repositoriorpg/painel/internal/config"
	"github.com/repositoriorpg/painel/internal/session"
)

// backendFalso registra todas as chamadas que o painel faz à API.
type backendFalso struct {
	mu       sync.Mutex
	chamadas []string
	corpos   map[string][]byte
	rotas    map[string]func(w http.ResponseWriter, r *http.Request)
}

func novoBackendFalso() *backendFalso {
	return &backendFalso{
		corpos: map[string][]byte{},
		rotas:  map[string]func(w http.ResponseWriter, r *http.Request){},
	}
}

func (b *backendFalso) responde(metodo, caminho string, fn func(w http.ResponseWriter, r *http.Request)) {
	b.rotas[metodo+" "+caminho] = fn
}

func (b *backendFalso) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	chave := r.Method + " " + r.URL.Path
	corpo, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.chamadas = append(b.chamadas, chave)
	b.corpos[chave] = corpo
	fn := b.rotas[chave]
	b.mu.Unlock()

	if fn == nil {
		w.Write([]byte(`[]`))
		return
	}
	fn(w, r)
}

func (b *backendFalso) total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.chamadas)
}

func (b *backendFalso) recebeu(chave string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.chamadas {
		if c == chave {
			return true
		}
	}
	return false
}

func (b *backendFalso) corpo(chave string) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.corpos[chave]
}

func tokenDeTeste(t *testing.T, id int, nome, tipo string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"usuarioId":    id,
		"nome_usuario": nome,
		"tipo_usuario": tipo,
		"exp":          time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("segredo-de-teste"))
	if err != nil {
		t.Fatalf("assinando token: %v", err)
	}
	return token
}

// painelDeTeste monta o roteador completo apontando para o backend falso.
func painelDeTeste(t *testing.T, backend *backendFalso) (http.Handler, *session.Manager) {
	t.Helper()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	apiClient, err := api.New(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}

	sessoes := session.NewManager(session.NewMemoryStore(), time.Hour, false)
	cfg := &config.Config{
		RateLimitPublic: config.RateLimitConfig{RequestsPerSecond: 100, Burst: 100},
		RateLimitAuth:   config.RateLimitConfig{RequestsPerSecond: 100, Burst: 100},
	}

	router, err := NewRouter(cfg, apiClient, sessoes)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return router, sessoes
}

// cookieDeSessao abre uma sessão real e devolve o cookie emitido.
func cookieDeSessao(t *testing.T, sessoes *session.Manager, id int, nome, tipo string) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := sessoes.Abrir(rec, req, tokenDeTeste(t, id, nome, tipo), false); err != nil {
		t.Fatalf("Abrir: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("nenhum cookie emitido")
	}
	return cookies[0]
}

func TestVisitanteRedirecionadoSemConsultarAPI(t *testing.T) {
	backend := novoBackendFalso()
	router, _ := painelDeTeste(t, backend)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/personagens/meus", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q", loc)
	}
	if backend.total() != 0 {
		t.Errorf("API consultada %d vezes antes do redirect", backend.total())
	}
}

func TestJogadorNaoAcessaAdmin(t *testing.T) {
	backend := novoBackendFalso()
	router, sessoes := painelDeTeste(t, backend)
	cookie := cookieDeSessao(t, sessoes, 5, "legolas", auth.TipoJogador)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q", loc)
	}
	if backend.total() != 0 {
		t.Errorf("API consultada %d vezes para um jogador barrado", backend.total())
	}
}

func TestAdminAcessaDashboard(t *testing.T) {
	backend := novoBackendFalso()
	backend.responde(http.MethodGet, "/dashboard", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalUsuarios":4,"totalPersonagens":12,"totalCampanhas":3,"totalSistemas":2,"lastActivities":[]}`))
	})
	router, sessoes := painelDeTeste(t, backend)
	cookie := cookieDeSessao(t, sessoes, 1, "gandalf", auth.TipoAdmin)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if corpo := rec.Body.String(); !strings.Contains(corpo, "12") {
		t.Error("totais do dashboard ausentes da página")
	}
}

func TestCriarPersonagemAtributosInvalidosNaoChamaAPI(t *testing.T) {
	backend := novoBackendFalso()
	router, sessoes := painelDeTeste(t, backend)
	cookie := cookieDeSessao(t, sessoes, 5, "legolas", auth.TipoJogador)

	form := url.Values{
		"nome":       {"Thorin"},
		"raca":       {"Anão"},
		"sistema_id": {"2"},
		"atributos":  {`{"forca": 10`},
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/personagem/criar", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "não é um JSON válido") {
		t.Error("mensagem de validação ausente")
	}
	if backend.recebeu("POST /personagens") {
		t.Error("POST /personagens disparado com atributos inválidos")
	}
}

func TestCriarPersonagemCoageSistemaEAtributos(t *testing.T) {
	backend := novoBackendFalso()
	backend.responde(http.MethodPost, "/personagens", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"nome":"Thorin","sistema_id":2}`))
	})
	router, sessoes := painelDeTeste(t, backend)
	cookie := cookieDeSessao(t, sessoes, 5, "legolas", auth.TipoJogador)

	form := url.Values{
		"nome":       {"Thorin"},
		"raca":       {"Anão"},
		"descricao":  {"Rei sob a Montanha"},
		"sistema_id": {"2"},
		"atributos":  {`{"forca": 10}`},
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/personagem/criar", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, corpo: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/personagem/7" {
		t.Errorf("Location = %q", loc)
	}

	var payload struct {
		Nome      string         `json:"nome"`
		SistemaID int            `json:"sistema_id"`
		Atributos map[string]int `json:"atributos"`
	}
	if err := json.Unmarshal(backend.corpo("POST /personagens"), &payload); err != nil {
		t.Fatalf("payload inválido: %v", err)
	}
	if payload.SistemaID != 2 {
		t.Errorf("sistema_id = %d, esperado número 2", payload.SistemaID)
	}
	if payload.Atributos["forca"] != 10 {
		t.Errorf("atributos = %v", payload.Atributos)
	}
}

func TestFormPersonagemAvisaFalhaDeSistemas(t *testing.T) {
	backend := novoBackendFalso()
	backend.responde(http.MethodGet, "/sistemas", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"erro":"pane no banco"}`))
	})
	router, sessoes := painelDeTeste(t, backend)
	cookie := cookieDeSessao(t, sessoes, 5, "legolas", auth.TipoJogador)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/personagem/criar", nil)
	req.AddCookie(cookie)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Falha ao carregar a lista de sistemas.") {
		t.Error("aviso de falha ao carregar sistemas ausente")
	}
}

func TestFichaPersonagemSistemaDesconhecido(t *testing.T) {
	backend := novoBackendFalso()
	backend.responde(http.MethodGet, "/personagens/3", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":3,"nome":"Gimli","usuario_id":5,"sistema_id":9}`))
	})
	router, _ := painelDeTeste(t, backend)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/personagem/3", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sistema não identificado") {
		t.Error("ficha deveria indicar sistema não identificado sem correspondência na lista")
	}
}

func TestExcluirCampanhaRedirecionaParaLista(t *testing.T) {
	backend := novoBackendFalso()
	backend.responde(http.MethodDelete, "/campanhas/5", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router, sessoes := painelDeTeste(t, backend)
	cookie := cookieDeSessao(t, sessoes, 1, "gandalf", auth.TipoAdmin)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/campanhas/5/excluir", nil)
	req.AddCookie(cookie)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/campanhas" {
		t.Errorf("Location = %q", loc)
	}
	if !backend.recebeu("DELETE /campanhas/5") {
		t.Error("DELETE /campanhas/5 nunca chegou à API")
	}
}

func TestLoginInvalidoMantemTela(t *testing.T) {
	backend := novoBackendFalso()
	backend.responde(http.MethodPost, "/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"erro":"credenciais inválidas"}`))
	})
	router, _ := painelDeTeste(t, backend)

	form := url.Values{"nome_usuario": {"aragorn"}, "senha": {"errada"}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Nome de usuário ou senha incorretos") {
		t.Error("mensagem de erro de login ausente")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("cookie de sessão emitido para login inválido")
	}
}

func TestLoginValidoAbreSessao(t *testing.T) {
	backend := novoBackendFalso()
	token := jwtParaBackend(t)
	backend.responde(http.MethodPost, "/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": token})
	})
	router, _ := painelDeTeste(t, backend)

	form := url.Values{"nome_usuario": {"aragorn"}, "senha": {"certa"}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, corpo: %s", rec.Code, rec.Body.String())
	}
	encontrou := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "rpg_sessao" && c.Value != "" {
			encontrou = true
		}
	}
	if !encontrou {
		t.Error("cookie de sessão ausente após login")
	}
}

func jwtParaBackend(t *testing.T) string {
	t.Helper()
	return tokenDeTeste(t, 9, "aragorn", auth.TipoJogador)
}

func TestFiltraPorNome(t *testing.T) {
	nomes := []string{"Thorin", "Gandalf", "thorondor"}
	ident := func(s string) string { return s }

	casos := []struct {
		termo    string
		esperado int
	}{
		{"", 3},
		{"thor", 2},
		{"GANDALF", 1},
		{"bilbo", 0},
	}
	for _, c := range casos {
		if got := len(filtraPorNome(nomes, ident, c.termo)); got != c.esperado {
			t.Errorf("filtraPorNome(%q) = %d itens, esperado %d", c.termo, got, c.esperado)
		}
	}
}

func TestPersonagensDisponiveis(t *testing.T) {
	todos := []api.Personagem{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	elenco := []api.PersonagemVinculo{
		{Personagem: api.Personagem{ID: 2}},
		{Personagem: api.Personagem{ID: 4}},
	}

	disponiveis := personagensDisponiveis(todos, elenco)
	if len(disponiveis) != 2 {
		t.Fatalf("disponíveis = %d, esperado 2", len(disponiveis))
	}
	for _, p := range disponiveis {
		if p.ID == 2 || p.ID == 4 {
			t.Errorf("personagem %d já está no elenco", p.ID)
		}
	}
}

func TestAtributosLegiveis(t *testing.T) {
	if got := atributosLegiveis(nil); got != "" {
		t.Errorf("nil = %q", got)
	}
	if got := atributosLegiveis(json.RawMessage("null")); got != "" {
		t.Errorf("null = %q", got)
	}
	if got := atributosLegiveis(json.RawMessage(`{"forca":10}`)); !strings.Contains(got, `"forca": 10`) {
		t.Errorf("indentado = %q", got)
	}
}

func TestRenderizadorCarregaTodasAsTelas(t *testing.T) {
	if _, err := novoRenderizador(); err != nil {
		t.Fatalf("novoRenderizador: %v", err)
	}
}
