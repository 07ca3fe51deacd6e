package bot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/botshop/internal/constants"
)

// 组件 custom_id 前缀，用于识别本机器人发出的交互组件
const customIDPrefix = "shop|"

// 交互动作
const (
	ActionSelectCategory = "category"
	ActionSelectProduct  = "product"
	ActionQuantity       = "quantity"
	ActionPayment        = "payment"
	ActionCancel         = "cancel"
)

var (
	ErrPayloadUnknown = errors.New("custom id does not belong to this bot")
	ErrPayloadInvalid = errors.New("custom id payload invalid")
)

// Payload 组件交互载荷。购买链路的每一步把下一步所需的上下文
// 编码进 custom_id，Discord 原样回传，无需额外会话状态。
type Payload struct {
	Action    string `json:"a"`
	ProductID uint   `json:"p,omitempty"`
	Quantity  int    `json:"q,omitempty"`
	Method    string `json:"m,omitempty"`
	Source    string `json:"s,omitempty"`
}

// Encode 序列化为 custom_id
func (p Payload) Encode() string {
	data, err := json.Marshal(p)
	if err != nil {
		return customIDPrefix + `{"a":"` + ActionCancel + `"}`
	}
	return customIDPrefix + string(data)
}

// ParsePayload 解析 custom_id 并按动作校验字段
func ParsePayload(customID string) (Payload, error) {
	if !strings.HasPrefix(customID, customIDPrefix) {
		return Payload{}, ErrPayloadUnknown
	}
	var payload Payload
	if err := json.Unmarshal([]byte(strings.TrimPrefix(customID, customIDPrefix)), &payload); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrPayloadInvalid, err)
	}
	if err := payload.validate(); err != nil {
		return Payload{}, err
	}
	return payload, nil
}

func (p Payload) validate() error {
	switch p.Action {
	case ActionSelectCategory, ActionSelectProduct, ActionCancel:
		return nil
	case ActionQuantity:
		if p.ProductID == 0 {
			return fmt.Errorf("%w: quantity step requires product", ErrPayloadInvalid)
		}
		return nil
	case ActionPayment:
		if p.ProductID == 0 || p.Quantity < 1 {
			return fmt.Errorf("%w: payment step requires product and quantity", ErrPayloadInvalid)
		}
		switch p.Method {
		case constants.PaymentMethodPoints,
			constants.PaymentMethodStripe,
			constants.PaymentMethodPaypal,
			constants.PaymentMethodBankTransfer:
		default:
			return fmt.Errorf("%w: unknown payment method %q", ErrPayloadInvalid, p.Method)
		}
		switch p.Source {
		case "", constants.PurchaseSourceCommand, constants.PurchaseSourceButton:
		default:
			return fmt.Errorf("%w: unknown source %q", ErrPayloadInvalid, p.Source)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown action %q", ErrPayloadInvalid, p.Action)
	}
}

// PurchaseSource 返回该载荷对应的下单来源
func (p Payload) PurchaseSource() string {
	if p.Source == constants.PurchaseSourceCommand {
		return constants.PurchaseSourceCommand
	}
	return constants.PurchaseSourceButton
}
