package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"gestor-visitas/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Hub guarda as conexoes dos clientes agrupadas pela data da agenda que
// cada um acompanha ("YYYY-MM-DD").
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan BroadcastMessage
	mu         sync.RWMutex
}

// BroadcastMessage e uma mensagem destinada aos clientes de uma data.
type BroadcastMessage struct {
	Data     string
	Mensagem []byte
}

var HubInstance = NewHub()

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan BroadcastMessage),
	}
}

// Run processa os canais do hub. Deve rodar numa goroutine propria.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.Data] == nil {
				h.clients[client.Data] = make(map[*Client]bool)
			}
			h.clients[client.Data][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.Data]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.clients, client.Data)
					}
				}
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.RLock()
			if clients, ok := h.clients[message.Data]; ok {
				for client := range clients {
					select {
					case client.Send <- message.Mensagem:
					default:
						close(client.Send)
						delete(clients, client)
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Client e uma conexao WebSocket de um navegador acompanhando a agenda.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
	Data string
}

// readPump so acompanha o encerramento da conexao; nao ha mensagens de
// entrada relevantes.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// AgendaWebSocketHandler registra o cliente para receber as mudancas da
// agenda do dia informado. URL: /api/agenda/dia/:data/ws
func AgendaWebSocketHandler(c *gin.Context) {
	data := c.Param("data")
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		http.Error(c.Writer, "Erro ao atualizar para WebSocket", http.StatusInternalServerError)
		return
	}
	client := &Client{
		Hub:  HubInstance,
		Conn: conn,
		Send: make(chan []byte, 256),
		Data: data,
	}
	HubInstance.register <- client

	go client.writePump()
	client.readPump()
}

func (h *Hub) BroadcastMessage(msg BroadcastMessage) {
	h.broadcast <- msg
}

// NotificarEvento transmite a mutacao de um evento para quem acompanha o
// dia dele. Acoes: criado, atualizado, removido, executado, cancelado.
func (h *Hub) NotificarEvento(acao string, evento *models.Evento) {
	payload, err := json.Marshal(gin.H{
		"acao":   acao,
		"evento": evento,
	})
	if err != nil {
		log.Printf("Erro ao serializar notificação da agenda: %v", err)
		return
	}
	h.BroadcastMessage(BroadcastMessage{Data: evento.Data, Mensagem: payload})
}
