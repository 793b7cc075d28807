package controllers

import "github.com/gofiber/fiber/v2"

func HandleWelcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Welcome to the Quidpay wallet service"})
}
