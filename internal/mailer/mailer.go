package mailer

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

var ErrUnsupportedType = errors.New("不支持的通知类型")

type kind struct {
	template string
	subject  string
	data     func() any
}

var kinds = map[string]kind{
	domain.NotificationEmployeeCreated: {
		template: "employee_created_email.html",
		subject:  "Shift Roster - New employee",
		data:     func() any { return &domain.EmployeeCreatedData{} },
	},
	domain.NotificationAssignmentRecorded: {
		template: "assignment_recorded_email.html",
		subject:  "Shift Roster - Shift recorded",
		data:     func() any { return &domain.AssignmentRecordedData{} },
	},
}

// Composer 把队列中的通知渲染成邮件
type Composer struct {
	from      string
	to        string
	templates map[string]*template.Template
}

func NewComposer(cfg *config.Config, fsys fs.FS) (*Composer, error) {
	c := &Composer{
		from:      cfg.Email.SMTP.Username,
		to:        cfg.Email.Recipient,
		templates: make(map[string]*template.Template, len(kinds)),
	}

	for typ, k := range kinds {
		tmpl, err := template.ParseFS(fsys, k.template)
		if err != nil {
			return nil, fmt.Errorf("无法解析邮件模板 %s: %w", k.template, err)
		}
		c.templates[typ] = tmpl
	}

	return c, nil
}

// Compose 解码消息体并构建邮件。返回的错误都不值得重试。
func (c *Composer) Compose(body []byte) (*mail.Msg, error) {
	envelope := struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("通知反序列化失败: %w", err)
	}

	k, ok := kinds[envelope.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, envelope.Type)
	}

	data := k.data()
	if err := json.Unmarshal(envelope.Data, data); err != nil {
		return nil, fmt.Errorf("通知数据反序列化失败: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(c.from); err != nil {
		return nil, fmt.Errorf("无法设置邮件发件人: %w", err)
	}
	if err := msg.To(c.to); err != nil {
		return nil, fmt.Errorf("无法设置邮件收件人: %w", err)
	}
	if err := msg.SetBodyHTMLTemplate(c.templates[envelope.Type], data); err != nil {
		return nil, fmt.Errorf("无法设置邮件正文: %w", err)
	}
	msg.Subject(k.subject)

	return msg, nil
}
