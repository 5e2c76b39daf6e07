package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"kira/internal/catalog"
	"kira/internal/classifier"
	"kira/internal/models"
	"kira/internal/storage"
)

// BootstrapInput is submitted automatically when a session starts, so the
// assistant opens the conversation without user action.
const BootstrapInput = "안녕 KIRA, 예약 도움말을 보여줄 수 있을까?"

const (
	classifierFailureText  = "죄송합니다. 요청을 처리하는 중 문제가 발생했습니다. 잠시 후 다시 시도해주세요."
	reservationFailureText = "❌ 예약 중 오류가 발생했습니다. 다시 시도해주세요."
	unknownIntentText      = "알 수 없는 요청입니다. Please try again."
	cancelStubText         = "현재 예약 취소 기능은 개발 중입니다."
	notEnteredMark         = "미입력"
)

// Engine orchestrates a submission: append a pending turn, classify the
// utterance, synthesize the reply, and resolve the turn through its
// handle. Store reads and writes happen only where an intent demands them.
type Engine struct {
	classifier classifier.Classifier
	store      storage.Store
	catalog    *catalog.Catalog
	logger     *zap.Logger
	now        func() time.Time
}

func NewEngine(clf classifier.Classifier, store storage.Store, cat *catalog.Catalog, logger *zap.Logger) *Engine {
	return &Engine{
		classifier: clf,
		store:      store,
		catalog:    cat,
		logger:     logger,
		now:        time.Now,
	}
}

// SetClock overrides the wall clock used for canned date ranges.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Submit runs one conversation round trip. Empty input and a missing
// credential are rejected before any turn is appended or any model call
// is made. Classifier failures resolve the turn with a degraded reply and
// leave the session usable.
func (e *Engine) Submit(ctx context.Context, s *Session, text string) (models.Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Turn{}, ErrEmptyInput
	}
	if !e.classifier.Configured() {
		return models.Turn{}, ErrMissingCredential
	}

	id := s.Begin(text)
	history := s.Turns()

	result, err := e.classifier.Classify(ctx, history, text, e.catalog.Rooms())
	if err != nil {
		e.logger.Error("Classification failed",
			zap.Error(err),
			zap.String("session_id", s.ID()),
			zap.String("turn_id", id))
		s.Resolve(id, Reply{
			Text:    classifierFailureText,
			Options: []models.Option{mainMenuOption()},
		})
	} else {
		s.Resolve(id, e.synthesize(ctx, result))
	}

	turn, _ := s.Turn(id)
	return turn, nil
}

// Bootstrap issues the canned opening submission for a fresh session.
func (e *Engine) Bootstrap(ctx context.Context, s *Session) (models.Turn, error) {
	return e.Submit(ctx, s, BootstrapInput)
}

// Commit writes the reservation draft held by the given turn to the store
// and replaces the form with a confirmation card. A draft can only be
// committed once, and only while its isComplete flag is set.
func (e *Engine) Commit(ctx context.Context, s *Session, turnID string) (models.Turn, error) {
	draft, err := s.BeginCommit(turnID)
	if err != nil {
		return models.Turn{}, err
	}

	reply := e.commitDraft(ctx, draft)
	s.Resolve(turnID, reply)

	turn, _ := s.Turn(turnID)
	return turn, nil
}

func (e *Engine) commitDraft(ctx context.Context, draft models.ReservationDraft) Reply {
	start, err := models.ParseSlotTime(draft.StartDateTime)
	if err == nil {
		var end time.Time
		end, err = models.ParseSlotTime(draft.EndDateTime)
		if err == nil {
			var id string
			id, err = e.store.CreateReservation(ctx, models.Reservation{
				Room:          draft.Room,
				StartDateTime: start,
				EndDateTime:   end,
				Purpose:       draft.Purpose,
				UserEmail:     draft.UserEmail,
			})
			if err == nil {
				text := fmt.Sprintf("✅ 예약이 성공적으로 완료되었습니다!\n예약 ID: %s\n%s",
					id, draftTable(draft))
				return Reply{Text: text}
			}
		}
	}

	e.logger.Error("Failed to create reservation",
		zap.Error(err),
		zap.String("room", draft.Room))
	return Reply{Text: reservationFailureText}
}

// synthesize maps a classifier result onto a rendered reply, branching on
// the intent discriminant. Unknown intents fall through to a fixed
// fallback even though the schema should make them impossible.
func (e *Engine) synthesize(ctx context.Context, result *models.IntentResult) Reply {
	switch result.IntentType {
	case models.IntentGreeting:
		return messageReply(result.Greeting, result.Options, greetingOptions())

	case models.IntentReserveRoom:
		return reservationFormReply(result.Reservation)

	case models.IntentListAllRooms:
		return Reply{
			Text:    "ID KAIST에는 다음과 같은 공간을 예약할 수 있습니다. \n" + result.ListAllRooms,
			Options: listRoomsOptions(),
		}

	case models.IntentViewReservations:
		return e.viewReservationsReply(ctx, result.ViewReservations)

	case models.IntentCancelReservation:
		return Reply{
			Text:    cancelStubText,
			Options: []models.Option{mainMenuOption()},
		}

	case models.IntentGetHelp:
		return messageReply(result.GetHelp, result.Options, helpOptions())

	case models.IntentOthers:
		return messageReply(result.Others, result.Options, []models.Option{mainMenuOption()})

	default:
		return Reply{
			Text:    unknownIntentText,
			Options: []models.Option{mainMenuOption()},
		}
	}
}

func messageReply(payload *models.MessagePayload, options, defaults []models.Option) Reply {
	var text string
	if payload != nil {
		text = payload.Message
	}
	if len(options) == 0 {
		options = defaults
	}
	return Reply{Text: text, Options: options}
}

func reservationFormReply(draft *models.ReservationDraft) Reply {
	if draft == nil {
		draft = &models.ReservationDraft{}
	}

	var b strings.Builder
	b.WriteString("공간을 새로 예약하고 싶으시군요. 아래 표에 누락된 정보를 알려주신 다음, [예약하기] 버튼을 눌러주세요.\n")
	b.WriteString(draftTable(*draft))
	if !draft.IsComplete {
		b.WriteString("\n일부 정보가 누락되어 있습니다. Insufficient information")
	}

	return Reply{
		Text: b.String(),
		Form: &models.DraftForm{Draft: *draft, CanCommit: draft.IsComplete},
	}
}

func draftTable(d models.ReservationDraft) string {
	return strings.Join([]string{
		"방 이름 Room Name: " + orNotEntered(d.Room),
		"시작 시간 Start DateTime: " + orNotEntered(d.StartDateTime),
		"종료 시간 End DateTime: " + orNotEntered(d.EndDateTime),
		"사용 목적 Purpose of Use: " + orNotEntered(d.Purpose),
		"이메일 Email: " + orNotEntered(d.UserEmail),
	}, "\n")
}

func orNotEntered(v string) string {
	if v == "" {
		return notEnteredMark
	}
	return v
}

// viewReservationsReply walks the three-stage funnel: pick a room, pick a
// date range, then list what the store has for that window.
func (e *Engine) viewReservationsReply(ctx context.Context, query *models.ViewQuery) Reply {
	if query == nil {
		query = &models.ViewQuery{}
	}

	if query.Room == "" {
		options := make([]models.Option, 0, e.catalog.Len())
		for _, room := range e.catalog.Rooms() {
			options = append(options, models.Option{
				Label:    room.Name,
				FullText: fmt.Sprintf("%s 방의 예약을 확인하고 싶어요", room.Name),
			})
		}
		return Reply{
			Text:    "예약을 확인하고 싶은 방을 선택해주세요:",
			Options: options,
		}
	}

	if query.StartDateTime == "" || query.EndDateTime == "" {
		return e.dateRangePrompt(query.Room)
	}

	start, err := models.ParseSlotTime(query.StartDateTime)
	if err != nil {
		e.logger.Warn("Unparseable start of reservation range, asking for dates again",
			zap.String("value", query.StartDateTime))
		return e.dateRangePrompt(query.Room)
	}
	end, err := models.ParseSlotRangeEnd(query.EndDateTime)
	if err != nil {
		e.logger.Warn("Unparseable end of reservation range, asking for dates again",
			zap.String("value", query.EndDateTime))
		return e.dateRangePrompt(query.Room)
	}

	reservations, err := e.store.ReservationsInRange(ctx, query.Room, start, end)
	if err != nil {
		// A failed read is reported the same way as an empty one.
		e.logger.Error("Failed to query reservations",
			zap.Error(err),
			zap.String("room", query.Room))
		reservations = nil
	}

	if len(reservations) == 0 {
		return Reply{
			Text: fmt.Sprintf("%s ~ %s 동안 %s에는 예약된 내역이 없습니다.",
				query.StartDateTime, query.EndDateTime, query.Room),
			Options: reservationNavOptions(),
		}
	}

	lines := make([]string, 0, len(reservations))
	for _, r := range reservations {
		lines = append(lines, fmt.Sprintf("시작 시간: %s, 종료 시간: %s, 사용 목적: %s, 예약자 이메일: %s",
			models.FormatKST(r.StartDateTime), models.FormatKST(r.EndDateTime), r.Purpose, r.UserEmail))
	}
	return Reply{
		Text:    fmt.Sprintf("%s의 예약 현황: \n%s", query.Room, strings.Join(lines, "\n")),
		Options: reservationNavOptions(),
	}
}

func (e *Engine) dateRangePrompt(room string) Reply {
	now := e.now().In(models.KST)
	first, last := MonthRange(now)
	nextFirst, nextLast := NextMonthRange(now)

	nextMonth := int(now.Month())%12 + 1

	return Reply{
		Text: fmt.Sprintf("%s 방의 예약을 확인하기 위해 시작 날짜와 종료 날짜를 선택해주세요.", room),
		Options: []models.Option{
			{
				Label:    fmt.Sprintf("이번 달 (%d월)", int(now.Month())),
				FullText: fmt.Sprintf("%s 방의 %s부터 %s까지 예약 현황을 알려줘", room, first, last),
			},
			{
				Label:    fmt.Sprintf("다음 달 (%d월)", nextMonth),
				FullText: fmt.Sprintf("%s 방의 %s부터 %s까지 예약 현황을 알려줘", room, nextFirst, nextLast),
			},
			{Label: "다른 방 선택", FullText: checkReservationsText},
		},
	}
}
