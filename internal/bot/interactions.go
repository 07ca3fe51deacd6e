package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/botshop/internal/constants"
	"github.com/botshop/internal/logger"
	"github.com/botshop/internal/service"

	"github.com/bwmarrin/discordgo"
)

var purchaseErrorKeys = map[error]string{
	service.ErrProductNotFound:      "error.product_not_found",
	service.ErrProductNotAvailable:  "error.product_not_available",
	service.ErrStockInsufficient:    "error.stock_insufficient",
	service.ErrPointsInsufficient:   "error.points_insufficient",
	service.ErrPaymentMethodInvalid: "error.payment_method_invalid",
	service.ErrPurchaseItemInvalid:  "error.purchase_item_invalid",
	service.ErrCategoryNotFound:     "error.category_not_found",
}

func (s *Service) onInteractionCreate(sess *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case commandBuy:
			s.handleBuyCommand(sess, i)
		case commandStock:
			s.handleStockCommand(sess, i)
		}
	case discordgo.InteractionMessageComponent:
		s.handleComponent(sess, i)
	}
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// 先快速应答，后续通过编辑响应给出结果
func deferEphemeral(sess *discordgo.Session, i *discordgo.InteractionCreate) error {
	return sess.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
}

func deferUpdate(sess *discordgo.Session, i *discordgo.InteractionCreate) error {
	return sess.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

func (s *Service) editResponse(sess *discordgo.Session, i *discordgo.InteractionCreate, content string, embeds []*discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	if embeds == nil {
		embeds = []*discordgo.MessageEmbed{}
	}
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	_, err := sess.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		logger.Warnw("bot_interaction_edit_failed", "error", err)
	}
}

func (s *Service) editError(sess *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	key := "error.internal"
	for target, candidate := range purchaseErrorKeys {
		if errors.Is(err, target) {
			key = candidate
			break
		}
	}
	if key == "error.internal" {
		logger.Errorw("bot_interaction_failed", "error", err)
	}
	s.editResponse(sess, i, "", []*discordgo.MessageEmbed{s.errorEmbed(s.t(key))}, nil)
}

func (s *Service) handleBuyCommand(sess *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := deferEphemeral(sess, i); err != nil {
		logger.Warnw("bot_defer_failed", "error", err)
		return
	}

	var categoryID, productID uint
	for _, option := range i.ApplicationCommandData().Options {
		switch option.Name {
		case "category":
			categoryID = uint(option.IntValue())
		case "product_id":
			productID = uint(option.IntValue())
		}
	}

	switch {
	case productID != 0:
		// 直购路径：跳过浏览，进入数量选择
		s.respondQuantityStep(sess, i, productID, constants.PurchaseSourceCommand)
	case categoryID != 0:
		s.respondProductStep(sess, i, categoryID)
	default:
		s.respondCategoryStep(sess, i)
	}
}

func (s *Service) handleStockCommand(sess *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := deferEphemeral(sess, i); err != nil {
		logger.Warnw("bot_defer_failed", "error", err)
		return
	}

	user := interactionUser(i)
	if user == nil || !s.cfg.IsAdminUser(user.ID) {
		s.editResponse(sess, i, "", []*discordgo.MessageEmbed{s.errorEmbed(s.t("error.forbidden"))}, nil)
		return
	}

	var productID uint
	var delta int
	for _, option := range i.ApplicationCommandData().Options {
		switch option.Name {
		case "product_id":
			productID = uint(option.IntValue())
		case "delta":
			delta = int(option.IntValue())
		}
	}

	product, err := s.container.ProductService.AdjustStock(context.Background(), productID, delta)
	if err != nil {
		s.editError(sess, i, err)
		return
	}

	logger.Infow("bot_stock_adjusted",
		"product_id", productID,
		"delta", delta,
		"operator", user.ID,
	)
	s.editResponse(sess, i, "", []*discordgo.MessageEmbed{s.productEmbed(product)}, nil)
}

func (s *Service) handleComponent(sess *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	payload, err := ParsePayload(data.CustomID)
	if err != nil {
		if !errors.Is(err, ErrPayloadUnknown) {
			logger.Warnw("bot_custom_id_invalid", "custom_id", data.CustomID, "error", err)
		}
		return
	}

	if err := deferUpdate(sess, i); err != nil {
		logger.Warnw("bot_defer_failed", "error", err)
		return
	}

	switch payload.Action {
	case ActionSelectCategory:
		categoryID, ok := parseSelectValue(data.Values)
		if !ok {
			s.editError(sess, i, ErrPayloadInvalid)
			return
		}
		s.respondProductStep(sess, i, categoryID)
	case ActionSelectProduct:
		productID, ok := parseSelectValue(data.Values)
		if !ok {
			s.editError(sess, i, ErrPayloadInvalid)
			return
		}
		s.respondQuantityStep(sess, i, productID, constants.PurchaseSourceButton)
	case ActionQuantity:
		s.respondPaymentStep(sess, i, payload)
	case ActionPayment:
		s.handlePayment(sess, i, payload)
	case ActionCancel:
		s.editResponse(sess, i, "", []*discordgo.MessageEmbed{s.infoEmbed(s.t("bot.cancelled"))}, nil)
	}
}

func parseSelectValue(values []string) (uint, bool) {
	if len(values) == 0 {
		return 0, false
	}
	id, err := strconv.ParseUint(values[0], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (s *Service) respondCategoryStep(sess *discordgo.Session, i *discordgo.InteractionCreate) {
	categories, err := s.container.CategoryService.ListPublic()
	if err != nil {
		s.editError(sess, i, err)
		return
	}
	if len(categories) == 0 {
		s.editResponse(sess, i, "", []*discordgo.MessageEmbed{s.infoEmbed(s.t("bot.no_categories"))}, nil)
		return
	}

	options := make([]discordgo.SelectMenuOption, 0, len(categories))
	for _, category := range categories {
		option := discordgo.SelectMenuOption{
			Label: category.Name,
			Value: strconv.FormatUint(uint64(category.ID), 10),
		}
		if category.Emoji != "" {
			option.Emoji = &discordgo.ComponentEmoji{Name: category.Emoji}
		}
		options = append(options, option)
	}

	menu := discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    Payload{Action: ActionSelectCategory}.Encode(),
		Placeholder: s.t("bot.choose_category"),
		Options:     options,
	}
	s.editResponse(sess, i, s.t("bot.choose_category"), nil, []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{menu}},
	})
}

func (s *Service) respondProductStep(sess *discordgo.Session, i *discordgo.InteractionCreate, categoryID uint) {
	products, err := s.container.ProductService.ListByCategory(categoryID)
	if err != nil {
		s.editError(sess, i, err)
		return
	}
	if len(products) == 0 {
		s.editResponse(sess, i, "", []*discordgo.MessageEmbed{s.infoEmbed(s.t("bot.no_products"))}, nil)
		return
	}

	// Discord 选择菜单最多 25 项
	if len(products) > 25 {
		products = products[:25]
	}
	options := make([]discordgo.SelectMenuOption, 0, len(products))
	for _, product := range products {
		options = append(options, discordgo.SelectMenuOption{
			Label:       product.Name,
			Value:       strconv.FormatUint(uint64(product.ID), 10),
			Description: fmt.Sprintf("%s %s | %s %d", s.t("bot.price"), product.PriceAmount.String(), s.t("bot.stock"), product.Stock),
		})
	}

	menu := discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    Payload{Action: ActionSelectProduct}.Encode(),
		Placeholder: s.t("bot.choose_product"),
		Options:     options,
	}
	s.editResponse(sess, i, s.t("bot.choose_product"), nil, []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{menu}},
	})
}

func (s *Service) respondQuantityStep(sess *discordgo.Session, i *discordgo.InteractionCreate, productID uint, source string) {
	product, err := s.container.ProductService.GetPublic(productID)
	if err != nil {
		s.editError(sess, i, err)
		return
	}

	quantities := []int{1, 2, 3, 5, 10}
	buttons := make([]discordgo.MessageComponent, 0, len(quantities))
	for _, quantity := range quantities {
		buttons = append(buttons, discordgo.Button{
			Label: strconv.Itoa(quantity),
			Style: discordgo.SecondaryButton,
			CustomID: Payload{
				Action:    ActionQuantity,
				ProductID: productID,
				Quantity:  quantity,
				Source:    source,
			}.Encode(),
		})
	}

	s.editResponse(sess, i, s.t("bot.choose_quantity"),
		[]*discordgo.MessageEmbed{s.productEmbed(product)},
		[]discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}},
	)
}

func (s *Service) respondPaymentStep(sess *discordgo.Session, i *discordgo.InteractionCreate, payload Payload) {
	quantity := payload.Quantity
	if quantity < 1 {
		quantity = 1
	}

	methods := []struct {
		method string
		style  discordgo.ButtonStyle
	}{
		{constants.PaymentMethodPoints, discordgo.PrimaryButton},
		{constants.PaymentMethodStripe, discordgo.SecondaryButton},
		{constants.PaymentMethodPaypal, discordgo.SecondaryButton},
		{constants.PaymentMethodBankTransfer, discordgo.SecondaryButton},
	}
	buttons := make([]discordgo.MessageComponent, 0, len(methods)+1)
	for _, entry := range methods {
		buttons = append(buttons, discordgo.Button{
			Label: s.t("payment.method." + entry.method),
			Style: entry.style,
			CustomID: Payload{
				Action:    ActionPayment,
				ProductID: payload.ProductID,
				Quantity:  quantity,
				Method:    entry.method,
				Source:    payload.Source,
			}.Encode(),
		})
	}
	buttons = append(buttons, discordgo.Button{
		Label:    "✕",
		Style:    discordgo.DangerButton,
		CustomID: Payload{Action: ActionCancel}.Encode(),
	})

	s.editResponse(sess, i, s.t("bot.choose_payment"), nil, []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	})
}

func (s *Service) handlePayment(sess *discordgo.Session, i *discordgo.InteractionCreate, payload Payload) {
	user := interactionUser(i)
	if user == nil {
		s.editError(sess, i, errors.New("interaction user missing"))
		return
	}

	result, err := s.container.PurchaseService.Purchase(service.PurchaseInput{
		DiscordID:     user.ID,
		Username:      user.Username,
		Items:         []service.PurchaseItem{{ProductID: payload.ProductID, Quantity: payload.Quantity}},
		PaymentMethod: payload.Method,
		Source:        payload.PurchaseSource(),
	})
	if err != nil {
		s.editError(sess, i, err)
		return
	}

	s.editResponse(sess, i, "", []*discordgo.MessageEmbed{s.orderSuccessEmbed(result)}, nil)
}
