package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"gumeo/internal/database"
	"gumeo/internal/domain"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	db, err := database.Connect("gumeo.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM appointments")
	db.Exec("DELETE FROM patients")
	db.Exec("DELETE FROM profiles")
	db.Exec("DELETE FROM users")

	log.Println("Creating demo account...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	user := domain.User{
		Email:        "demo@gumeo.app",
		PasswordHash: string(hash),
		Name:         "Dra. Ana Souza",
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatal("create user failed:", err)
	}

	profile := domain.Profile{
		UserID:    user.ID,
		FullName:  "Dra. Ana Souza",
		Specialty: "Clínica Geral",
		CRM:       "CRM-SP 123456",
		Phone:     "+55 11 98888-0001",
		Plan:      domain.PlanPlus,
	}
	if err := db.Create(&profile).Error; err != nil {
		log.Fatal("create profile failed:", err)
	}

	log.Println("Creating patients...")
	patients := []domain.Patient{
		{UserID: user.ID, Name: "João Pereira", Phone: "+55 11 97777-0002", Email: "joao@example.com"},
		{UserID: user.ID, Name: "Maria Lima", Phone: "+55 11 96666-0003", Allergies: "Dipirona"},
	}
	for i := range patients {
		if err := db.Create(&patients[i]).Error; err != nil {
			log.Fatal("create patient failed:", err)
		}
	}

	log.Println("Creating appointments and payments...")
	appt := domain.Appointment{
		UserID:          user.ID,
		PatientID:       patients[0].ID,
		Title:           "Consulta de rotina",
		AppointmentDate: time.Now().Add(48 * time.Hour),
		Duration:        30,
		Status:          domain.AppointmentScheduled,
	}
	if err := db.Create(&appt).Error; err != nil {
		log.Fatal("create appointment failed:", err)
	}

	paid := time.Now().Add(-24 * time.Hour)
	payments := []domain.Payment{
		{UserID: user.ID, PatientID: patients[0].ID, AppointmentID: &appt.ID, Amount: 250, Status: domain.PaymentPaid, PaymentMethod: "pix", PaidDate: &paid},
		{UserID: user.ID, PatientID: patients[1].ID, Amount: 180, Status: domain.PaymentPending},
	}
	for i := range payments {
		if err := db.Create(&payments[i]).Error; err != nil {
			log.Fatal("create payment failed:", err)
		}
	}

	log.Println("Creating notifications...")
	notifications := []domain.Notification{
		{UserID: user.ID, Title: "Bem-vinda ao Gumeo", Message: "Complete o onboarding para configurar sua prática.", Type: domain.NotifInfo, ActionURL: "/onboarding"},
		{UserID: user.ID, Title: "Pagamento recebido", Message: "Pagamento de R$ 250.00 recebido de João Pereira", Type: domain.NotifSuccess, ActionURL: "/dashboard"},
	}
	for i := range notifications {
		if err := db.Create(&notifications[i]).Error; err != nil {
			log.Fatal("create notification failed:", err)
		}
	}

	log.Println("Seed finished. Login with demo@gumeo.app / demo1234")
}
