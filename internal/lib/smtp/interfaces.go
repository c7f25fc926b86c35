// Package smtp отправляет письма об истекающих продуктах каталога.
// Сессия и транспорт спрятаны за интерфейсами: сервис-отправитель
// тестируется подменой клиента, без живого почтового сервера.
package smtp

import "io"

// Client подмножество команд SMTP-сессии, достаточное для отправки
// одного письма: конверт, тело, корректное завершение.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface открывает аутентифицированную SMTP-сессию
// и сообщает адрес отправителя для заголовка From.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
