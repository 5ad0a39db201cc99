package services

import (
	"fmt"
	"strings"

	"github.com/poofware/contractor-access-service/internal/constants"
	"github.com/poofware/contractor-access-service/internal/models"
	"github.com/poofware/contractor-access-service/internal/utils"
)

const (
	replyInvalidCompany = "Sorry, we couldn't recognize that as a company name. " +
		"Please reply with the name of your company to request building access."

	replyNeedUnitAndSide = "Please include both the unit number and the side of the building (North or South). " +
		"Example: " + constants.UnitSideExample

	replyUnexpectedState = "Something went wrong. Please start over by texting your company name."
)

func replyAskUnitAndSide(company string) string {
	return fmt.Sprintf(
		"Thanks, %s! Please reply with the unit number you're servicing and the side of the building (North or South). Example: %s",
		company, constants.UnitSideExample,
	)
}

func replyUnitUnknown(unit string) string {
	return fmt.Sprintf(
		"Sorry, %s is not a valid unit. Please check the unit number and try again. Example: %s",
		unit, constants.UnitSideExample,
	)
}

func replyBuildingNotMapped(unit string) string {
	return fmt.Sprintf(
		"We couldn't match unit %s to a building. Please contact property management for access.",
		unit,
	)
}

func replyConfirm(company string, bldg *models.Building, unit, side string) string {
	return fmt.Sprintf(
		"Please confirm your request:\nCompany: %s\nBuilding: %s\nUnit: %s\nSide: %s\n\nReply YES to confirm or NO to start over.",
		company, bldg.Name, unit, utils.DisplaySide(side),
	)
}

func replyStartOver() string {
	return "No problem, let's start over. Please reply with the unit number and the side of the building (North or South). " +
		"Example: " + constants.UnitSideExample
}

func replyWindowClosed(status utils.WindowStatus, emergencyContact string) string {
	hours := fmt.Sprintf("Monday through Friday, %s to %s",
		hourLabel(utils.ServiceWindowStartHour), hourLabel(utils.ServiceWindowEndHour))

	var lead string
	switch status {
	case utils.WindowClosedWeekend:
		lead = "Building access is not available on weekends. Access codes are only provided " + hours + "."
	case utils.WindowClosedHoliday:
		lead = "Building access is not available on holidays. Access codes are only provided " + hours + "."
	default:
		lead = "Building access is only available " + hours + ". Reply YES again during business hours to receive your code."
	}
	return fmt.Sprintf("%s For emergencies, please call %s.", lead, emergencyContact)
}

func replyNoActivePin(bldg *models.Building) string {
	name := "this building"
	if bldg != nil && bldg.Name != "" {
		name = bldg.Name
	}
	return fmt.Sprintf(
		"Sorry, there is no active access code for %s right now. Please contact property management directly.",
		name,
	)
}

func replyPinDelivered(pin *models.ActivePin, bldg *models.Building, unit string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your access code for %s, unit %s is: %s\n\n", bldg.Name, unit, pin.PinCode)
	b.WriteString("Use this code to open the lockbox and retrieve the key. ")
	b.WriteString("Please secure all doors when you leave and return the key to the lockbox.")
	if instr := strings.TrimSpace(utils.Val(bldg.AccessInstructions)); instr != "" {
		b.WriteString("\n\n")
		b.WriteString(instr)
	}
	fmt.Fprintf(&b, "\n\nReminder: work is only permitted Monday through Friday, %s to %s.",
		hourLabel(utils.ServiceWindowStartHour), hourLabel(utils.ServiceWindowEndHour))
	return b.String()
}

func hourLabel(h int) string {
	switch {
	case h == 0:
		return "12 AM"
	case h < 12:
		return fmt.Sprintf("%d AM", h)
	case h == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", h-12)
	}
}
